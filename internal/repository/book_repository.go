package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
)

// BookRepository defines library persistence operations. Every query is
// scoped by owner in the WHERE clause, so a book owned by another user is
// indistinguishable from a book that does not exist.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, ownerID, bookID uuid.UUID) (*model.Book, error)
	FindByVolume(ctx context.Context, ownerID uuid.UUID, googleBooksID string) (*model.Book, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error)
	Delete(ctx context.Context, ownerID, bookID uuid.UUID) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new library entry. The composite unique index on
// (user_id, google_books_id) is the arbiter under concurrent saves: one
// insert wins, the other surfaces as ErrBookAlreadyExists.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrBookAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists an existing library entry.
func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// FindByID finds one of the owner's books by ID.
func (r *bookRepository) FindByID(ctx context.Context, ownerID, bookID uuid.UUID) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookID, ownerID).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByVolume finds one of the owner's books by catalog volume ID.
func (r *bookRepository) FindByVolume(ctx context.Context, ownerID uuid.UUID, googleBooksID string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND google_books_id = ?", ownerID, googleBooksID).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListByOwner lists the owner's books, most recently created first.
func (r *bookRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Delete removes one of the owner's books. Reports gorm.ErrRecordNotFound
// when nothing matched, which makes a repeated delete fail cleanly.
func (r *bookRepository) Delete(ctx context.Context, ownerID, bookID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookID, ownerID).
		Delete(&model.Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
