package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReadingStatus represents where a book sits in the user's reading flow.
type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "Want to Read"
	StatusReading    ReadingStatus = "Reading"
	StatusCompleted  ReadingStatus = "Completed"
)

// Valid reports whether s is one of the known reading statuses.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// StringList stores a []string column as JSON text, since MySQL has no
// native array type.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}

// Book represents a catalog volume saved to a user's library. Descriptive
// fields are a snapshot taken at save time and are not kept in sync with
// the external catalog.
type Book struct {
	ID             uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID     `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_user_volume"`
	GoogleBooksID  string        `json:"googleBooksId" gorm:"size:128;not null;uniqueIndex:idx_user_volume"`
	Title          string        `json:"title" gorm:"size:512;not null"`
	Subtitle       string        `json:"subtitle" gorm:"size:512"`
	Authors        StringList    `json:"authors" gorm:"type:text"`
	Description    string        `json:"description" gorm:"type:text"`
	Thumbnail      string        `json:"thumbnail" gorm:"size:1024"`
	PreviewLink    string        `json:"previewLink" gorm:"size:1024"`
	InfoLink       string        `json:"infoLink" gorm:"size:1024"`
	PublishedDate  string        `json:"publishedDate" gorm:"size:64"`
	PageCount      int           `json:"pageCount"`
	Categories     StringList    `json:"categories" gorm:"type:text"`
	Status         ReadingStatus `json:"status" gorm:"type:varchar(20);not null;default:'Want to Read'"`
	PersonalReview string        `json:"personalReview" gorm:"type:text"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusWantToRead
	}
	return nil
}
