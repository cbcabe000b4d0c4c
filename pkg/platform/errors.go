package platform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOpenAPI is returned when an imported document is not a usable OpenAPI description.
	ErrInvalidOpenAPI = errors.New("invalid OpenAPI document")
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// OpenAPIError lists the validation problems of an imported document.
type OpenAPIError struct {
	Problems []string
}

func (e *OpenAPIError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidOpenAPI, strings.Join(e.Problems, "; "))
}

func (e *OpenAPIError) Unwrap() error {
	return ErrInvalidOpenAPI
}

// NotFoundError names the missing resource.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
