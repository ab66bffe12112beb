// Package errs define custom error types and utilities.
//
// Every failure a route reports is an *HTTPError tagged with a Kind. The
// error middleware switches on that Kind to pick the response status and
// envelope, and translates MessageID into the request locale.
package errs

import (
	"context"
	"strings"

	"github.com/maprangsoft/crudapi/internal/i18n"
)

// Kind tags the class of an HTTPError.
type Kind int

const (
	// KindInternal covers store failures and anything unexpected.
	KindInternal Kind = iota
	// KindValidation means the request input was rejected.
	KindValidation
	// KindNotFound means the addressed record or route does not exist.
	KindNotFound
	// KindConflict means a uniqueness rule was violated.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "invalid email format" }
type FieldError struct {
	// Field is the request field the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Kind: the error class the middleware switches on.
//   - Code: machine-friendly error code (e.g. "VALIDATION_ERROR").
//   - Message: message in the default locale, used for logs and as fallback.
//   - MessageID/Data: catalog key and template data for localization.
//   - Status: HTTP status code.
//   - Errors: optional per-field errors.
type HTTPError struct {
	Kind      Kind           `json:"-"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	MessageID string         `json:"-"`
	Data      map[string]any `json:"-"`
	Status    int            `json:"-"`

	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError of the same Kind and Code, so
// errors.Is(err, errs.NewNotFoundError(...)) matches any not-found error.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

// Localize returns the message in the locale stored in ctx. Errors without a
// MessageID keep their literal Message.
func (e *HTTPError) Localize(ctx context.Context) string {
	if e.MessageID == "" {
		return e.Message
	}
	return i18n.CtxWithData(ctx, e.MessageID, e.Data)
}

// WithField returns a copy of this HTTPError with one more field error.
func (e *HTTPError) WithField(field, message string) *HTTPError {
	clone := *e
	clone.Errors = append(append([]FieldError(nil), e.Errors...), FieldError{Field: field, Error: message})
	return &clone
}

// ErrorBody is the payload under the "error" key of every error response.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Stack   string       `json:"stack,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ErrorResponse is the envelope written for every failed request:
//
//	{ "error": { "code": "NOT_FOUND", "message": "user not found" } }
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func newError(kind Kind, status int, code, msgID string, data map[string]any) *HTTPError {
	return &HTTPError{
		Kind:      kind,
		Code:      code,
		Message:   i18n.Default(msgID, data),
		MessageID: msgID,
		Data:      data,
		Status:    status,
	}
}
