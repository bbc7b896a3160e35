package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Client-side failure taxonomy.
var (
	ErrTransport        = errors.New("transport failure")
	ErrAuth             = errors.New("credential rejected")
	ErrDecode           = errors.New("malformed response body")
	ErrValidation       = errors.New("validation failed")
	ErrRequestFailed    = errors.New("request failed")
	ErrNoCredential     = errors.New("session has no credential")
	ErrNoSession        = errors.New("no stored session")
	ErrInvalidPageState = errors.New("invalid page state")
	ErrFormNotOpen      = errors.New("form is not open")
	ErrNothingToDelete  = errors.New("delete confirmation is not open")
)

// Reference API errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError carries field-level messages, either produced locally by the
// required-field check or supplied by the server in its error body.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// RequestFailedError is a non-success status without a structured body.
type RequestFailedError struct {
	Status int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *RequestFailedError) Unwrap() error { return ErrRequestFailed }

// UserMessage picks the text shown to the operator for a failed mutation:
// the server-supplied message when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	return fallback
}
