// Package service holds business logic orchestration between the record store, the path
// resolver and the handlers. Only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/survey-pdf-service/internal/model"
)

// Terminal outcomes of a document request. Each maps to exactly one HTTP status.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("invalid api key")
	ErrForbiddenRegion = errors.New("invalid state")
	ErrRecordNotFound  = errors.New("guid not found")
	ErrFileNotFound    = errors.New("pdf file not found")
)

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// DocumentRequest carries the caller-supplied parameters of one fetch.
// MissingState and MissingGUID mark parameters absent from the request; a parameter sent
// with an empty value is present and goes through the region and lookup checks.
type DocumentRequest struct {
	State        string
	GUID         string
	APIKey       string
	MissingState bool
	MissingGUID  bool
}

// DocumentService resolves a GUID to a servable PDF on disk.
type DocumentService interface {
	Fetch(ctx context.Context, req DocumentRequest) (model.Document, error)
}
