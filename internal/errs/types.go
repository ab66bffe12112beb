package errs

import (
	"net/http"

	"github.com/maprangsoft/crudapi/internal/i18n"
)

// Stable error codes returned to clients.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeDatabase   = "DATABASE_ERROR"
)

// CodeInternal is "INTERNAL_SERVER_ERROR", derived from the status text.
var CodeInternal = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))

// NewValidationError creates a 400 VALIDATION_ERROR.
//
// msgID selects the catalog message; an empty msgID uses the generic
// "invalid data" message. data fills the message template, e.g.
// {"Field": "email"}.
func NewValidationError(msgID string, data map[string]any) *HTTPError {
	if msgID == "" {
		msgID = i18n.ErrValidation
	}
	return newError(KindValidation, http.StatusBadRequest, CodeValidation, msgID, data)
}

// NewNotFoundError creates a 404 NOT_FOUND. An empty msgID uses the generic
// "resource not found" message.
func NewNotFoundError(msgID string, data map[string]any) *HTTPError {
	if msgID == "" {
		msgID = i18n.ErrNotFound
	}
	return newError(KindNotFound, http.StatusNotFound, CodeNotFound, msgID, data)
}

// NewConflictError creates a 409 CONFLICT.
func NewConflictError(msgID string, data map[string]any) *HTTPError {
	if msgID == "" {
		msgID = i18n.ErrConflict
	}
	return newError(KindConflict, http.StatusConflict, CodeConflict, msgID, data)
}

// NewRouteNotFoundError creates the 404 returned for an unregistered route or
// method.
func NewRouteNotFoundError(method, path string) *HTTPError {
	return NewNotFoundError(i18n.ErrRouteNotFound, map[string]any{"Method": method, "Path": path})
}

// NewDatabaseError creates a 500 DATABASE_ERROR. The message is generic; the
// underlying store error is only logged.
func NewDatabaseError() *HTTPError {
	return newError(KindInternal, http.StatusInternalServerError, CodeDatabase, i18n.ErrDatabase, nil)
}

// NewInternalServerError creates a generic 500 INTERNAL_SERVER_ERROR.
func NewInternalServerError() *HTTPError {
	return newError(KindInternal, http.StatusInternalServerError, CodeInternal, i18n.ErrInternal, nil)
}

// NewStatusError creates an internal-kind error for an arbitrary status, with
// a code derived from the status text (413 -> "REQUEST_ENTITY_TOO_LARGE").
func NewStatusError(status int, message string) *HTTPError {
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}
	return &HTTPError{
		Kind:    KindInternal,
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}
