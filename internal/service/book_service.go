package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/cache"
	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

const bookCacheTTL = 5 * time.Minute

// UpdateBookInput carries the user-editable fields of a library entry.
// Nil means "leave unchanged".
type UpdateBookInput struct {
	Status         *model.ReadingStatus
	PersonalReview *string
}

// BookService exposes the owner-scoped library operations.
type BookService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error)
	Get(ctx context.Context, ownerID, bookID uuid.UUID) (*model.Book, error)
	Save(ctx context.Context, ownerID uuid.UUID, book *model.Book) (*model.Book, error)
	Update(ctx context.Context, ownerID, bookID uuid.UUID, input UpdateBookInput) (*model.Book, error)
	Delete(ctx context.Context, ownerID, bookID uuid.UUID) error
}

type bookService struct {
	repo  repository.BookRepository
	cache *cache.Client
}

// NewBookService builds a BookService with repository and cache.
func NewBookService(repo repository.BookRepository, cache *cache.Client) BookService {
	return &bookService{repo: repo, cache: cache}
}

func (s *bookService) cacheKey(ownerID, bookID uuid.UUID) string {
	return fmt.Sprintf("book:%s:%s", ownerID, bookID)
}

// List returns the owner's library, most recently saved first. Always a
// fresh query; the list is not cached.
func (s *bookService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Book, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns one of the owner's books, reading through the cache.
func (s *bookService) Get(ctx context.Context, ownerID, bookID uuid.UUID) (*model.Book, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(ownerID, bookID)); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.repo.FindByID(ctx, ownerID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(ownerID, bookID), payload, bookCacheTTL)
	}
	return book, nil
}

// Save adds a catalog volume to the owner's library. Descriptive fields are
// copied verbatim from the payload; status defaults to Want to Read and the
// review starts empty. A volume already in the library fails with
// ErrBookAlreadyExists.
func (s *bookService) Save(ctx context.Context, ownerID uuid.UUID, book *model.Book) (*model.Book, error) {
	if book.Status == "" {
		book.Status = model.StatusWantToRead
	} else if !book.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	// Fast path for the common duplicate; the unique index still decides
	// under races.
	existing, err := s.repo.FindByVolume(ctx, ownerID, book.GoogleBooksID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrBookAlreadyExists
	}

	book.ID = uuid.New()
	book.UserID = ownerID
	book.PersonalReview = ""

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update applies the provided fields to one of the owner's books, leaving
// omitted fields untouched.
func (s *bookService) Update(ctx context.Context, ownerID, bookID uuid.UUID, input UpdateBookInput) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, ownerID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		book.Status = *input.Status
	}
	if input.PersonalReview != nil {
		book.PersonalReview = *input.PersonalReview
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID, bookID))
	return book, nil
}

// Delete removes one of the owner's books. Deleting twice yields
// ErrBookNotFound the second time.
func (s *bookService) Delete(ctx context.Context, ownerID, bookID uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBookNotFound
		}
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID, bookID))
	return nil
}
