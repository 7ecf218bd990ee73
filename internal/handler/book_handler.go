package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookshelf/internal/auth"
	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

// BookHandler handles library endpoints. All routes are behind the auth
// gateway, so an identity is always available from the request context.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// SaveBookRequest carries a catalog volume snapshot to store in the library.
type SaveBookRequest struct {
	GoogleBooksID string   `json:"googleBooksId" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Subtitle      string   `json:"subtitle"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail"`
	PreviewLink   string   `json:"previewLink"`
	InfoLink      string   `json:"infoLink"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	Categories    []string `json:"categories"`
	Status        string   `json:"status"`
}

// UpdateBookRequest carries a partial update; nil fields are left unchanged.
type UpdateBookRequest struct {
	Status         *string `json:"status"`
	PersonalReview *string `json:"personalReview"`
}

// BookResponse wraps a mutated book with a confirmation message.
type BookResponse struct {
	Message string      `json:"message"`
	Book    *model.Book `json:"book"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListBooks godoc
// @Summary List the user's library
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	ownerID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	books, err := h.bookService.List(c.Request().Context(), ownerID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a single library entry
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	ownerID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	bookID, err := parseBookID(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.Get(c.Request().Context(), ownerID, bookID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// SaveBook godoc
// @Summary Save a catalog volume to the library
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveBookRequest true "Volume snapshot"
// @Success 201 {object} BookResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) SaveBook(c echo.Context) error {
	ownerID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req SaveBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid request body",
			Code:    "VALIDATION_ERROR",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: validationMessage(err),
			Code:    "VALIDATION_ERROR",
		})
	}

	book := &model.Book{
		GoogleBooksID: req.GoogleBooksID,
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		Authors:       req.Authors,
		Description:   req.Description,
		Thumbnail:     req.Thumbnail,
		PreviewLink:   req.PreviewLink,
		InfoLink:      req.InfoLink,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Categories:    req.Categories,
		Status:        model.ReadingStatus(req.Status),
	}

	saved, err := h.bookService.Save(c.Request().Context(), ownerID, book)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, BookResponse{
		Message: "Book saved successfully",
		Book:    saved,
	})
}

// UpdateBook godoc
// @Summary Update status or review of a library entry
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body UpdateBookRequest true "Fields to change"
// @Success 200 {object} BookResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	ownerID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	bookID, err := parseBookID(c)
	if err != nil {
		return err
	}

	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid request body",
			Code:    "VALIDATION_ERROR",
		})
	}

	input := service.UpdateBookInput{
		PersonalReview: req.PersonalReview,
	}
	if req.Status != nil {
		status := model.ReadingStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.bookService.Update(c.Request().Context(), ownerID, bookID, input)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, BookResponse{
		Message: "Book updated successfully",
		Book:    updated,
	})
}

// DeleteBook godoc
// @Summary Remove a library entry
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	ownerID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	bookID, err := parseBookID(c)
	if err != nil {
		return err
	}

	if err := h.bookService.Delete(c.Request().Context(), ownerID, bookID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted successfully"})
}

// parseBookID reads the :id path param. A malformed ID maps to the same
// 404 as a missing book, so nothing about stored IDs leaks.
func parseBookID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrBookNotFound)
		return uuid.Nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return id, nil
}
