package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateEmail is returned when the signup email is already registered.
	ErrDuplicateEmail = errors.New("Account already exists")
	// ErrInvalidCredentials is returned when login fails. The same error covers
	// unknown email and wrong password so the two cases are indistinguishable.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrBookNotFound is returned when a book does not exist or is owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrBookNotFound = errors.New("Book not found")
	// ErrBookAlreadyExists is returned when the volume is already in the
	// user's library.
	ErrBookAlreadyExists = errors.New("Book already in your library")
	// ErrInvalidStatus is returned when a reading status is not one of the
	// known values.
	ErrInvalidStatus = errors.New("Invalid reading status")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. This is the single
// taxonomy-to-status table; the service layer never constructs
// transport-specific responses.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOK_NOT_FOUND")
	case errors.Is(err, ErrBookAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOK_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	default:
		// Storage and other unanticipated failures stay generic so no
		// internal detail leaks to clients.
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
