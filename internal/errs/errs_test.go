package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *HTTPError
		kind    Kind
		status  int
		code    string
		message string
	}{
		{"validation default", NewValidationError("", nil), KindValidation, http.StatusBadRequest, "VALIDATION_ERROR", "invalid data"},
		{"validation with field", NewValidationError(i18n.ErrFieldRequired, map[string]any{"Field": "title"}), KindValidation, http.StatusBadRequest, "VALIDATION_ERROR", "title is required"},
		{"not found default", NewNotFoundError("", nil), KindNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
		{"not found entity", NewNotFoundError(i18n.ErrUserNotFound, nil), KindNotFound, http.StatusNotFound, "NOT_FOUND", "user not found"},
		{"conflict", NewConflictError("", nil), KindConflict, http.StatusConflict, "CONFLICT", "a record with the same unique value already exists"},
		{"route", NewRouteNotFoundError("DELETE", "/nothing"), KindNotFound, http.StatusNotFound, "NOT_FOUND", "route not found: DELETE /nothing"},
		{"database", NewDatabaseError(), KindInternal, http.StatusInternalServerError, "DATABASE_ERROR", "a database error occurred"},
		{"internal", NewInternalServerError(), KindInternal, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error"},
		{"status", NewStatusError(http.StatusRequestEntityTooLarge, "too big"), KindInternal, http.StatusRequestEntityTooLarge, "REQUEST_ENTITY_TOO_LARGE", "too big"},
		{"unknown status", NewStatusError(999, "odd"), KindInternal, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("get user: %w", NewNotFoundError(i18n.ErrUserNotFound, nil))

	assert.True(t, errors.Is(wrapped, NewNotFoundError("", nil)))
	assert.False(t, errors.Is(wrapped, NewConflictError("", nil)))
	assert.False(t, errors.Is(NewDatabaseError(), NewInternalServerError()), "same kind, different code")

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, i18n.ErrUserNotFound, httpErr.MessageID)
}

func TestLocalize(t *testing.T) {
	ctx := i18n.WithLocalizer(context.Background(), i18n.NewLocalizer("th"))

	err := NewValidationError(i18n.ErrInvalidID, nil)
	assert.Equal(t, "id ต้องเป็นตัวเลขที่เป็นจำนวนเต็มบวก", err.Localize(ctx))
	assert.Equal(t, "id must be a positive integer", err.Localize(context.Background()))

	literal := &HTTPError{Message: "kept as is"}
	assert.Equal(t, "kept as is", literal.Localize(ctx))
}

func TestWithField(t *testing.T) {
	base := NewValidationError("", nil)
	withEmail := base.WithField("email", "invalid email format")

	assert.Empty(t, base.Errors)
	assert.Equal(t, []FieldError{{Field: "email", Error: "invalid email format"}}, withEmail.Errors)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "internal", KindInternal.String())
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed)))
}
