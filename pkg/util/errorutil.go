package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// PageError standardizes failures rendered as an HTML error page.
type PageError struct {
	Status  int
	Title   string
	Message string
	Err     error
}

func (e *PageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// NewPageError constructs a PageError.
func NewPageError(status int, title, message string) *PageError {
	return &PageError{Status: status, Title: title, Message: message}
}

func NewNotFoundPage(resource string) *PageError {
	return &PageError{
		Status:  http.StatusNotFound,
		Title:   "Not found",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewBadRequestPage(message string) *PageError {
	return &PageError{
		Status:  http.StatusBadRequest,
		Title:   "Bad request",
		Message: message,
	}
}

func NewInternalPage(err error) *PageError {
	return &PageError{
		Status:  http.StatusInternalServerError,
		Title:   "Something went wrong",
		Message: "internal server error",
		Err:     err,
	}
}

// ToPageError converts generic errors to PageError.
func ToPageError(err error) *PageError {
	if err == nil {
		return nil
	}

	var pageErr *PageError
	if errors.As(err, &pageErr) {
		return pageErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &PageError{
			Status:  fiberErr.Code,
			Title:   http.StatusText(fiberErr.Code),
			Message: fiberErr.Message,
			Err:     err,
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFoundPage("resource")
	}

	return NewInternalPage(err)
}
