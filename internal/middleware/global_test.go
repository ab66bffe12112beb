package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/config"
	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(env string) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: env, DefaultLocale: "en"},
		},
		Logger: &logger,
	}
}

func runErrorHandler(t *testing.T, env, method string, err error) (*httptest.ResponseRecorder, errs.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/things/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewGlobalMiddlewares(newTestServer(env)).GlobalErrorHandler(err, c)

	var body errs.ErrorResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "validation error",
			err:     errs.NewValidationError(i18n.ErrInvalidID, nil),
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "id must be a positive integer",
		},
		{
			name:    "wrapped not found error",
			err:     errors.Wrap(errs.NewNotFoundError(i18n.ErrUserNotFound, nil), "lookup"),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "user not found",
		},
		{
			name:    "unknown route",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "route not found: GET /things/1",
		},
		{
			name:    "method not allowed",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "route not found: GET /things/1",
		},
		{
			name:    "unique violation",
			err:     errors.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "users: create"),
			status:  http.StatusConflict,
			code:    "CONFLICT",
			message: "a record with the same unique value already exists",
		},
		{
			name:    "missing row",
			err:     errors.Wrap(pgx.ErrNoRows, "users: delete 9"),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "resource not found",
		},
		{
			name:    "check violation",
			err:     &pgconn.PgError{Code: "23514", ConstraintName: "products_price_check"},
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "invalid data",
		},
		{
			name:    "data exception",
			err:     &pgconn.PgError{Code: "22003"},
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "invalid data",
		},
		{
			name:    "other database error",
			err:     &pgconn.PgError{Code: "42P01", Message: "relation \"users\" does not exist"},
			status:  http.StatusInternalServerError,
			code:    "DATABASE_ERROR",
			message: "a database error occurred",
		},
		{
			name:    "echo error with its own status",
			err:     echo.NewHTTPError(http.StatusRequestEntityTooLarge, "body too big"),
			status:  http.StatusRequestEntityTooLarge,
			code:    "REQUEST_ENTITY_TOO_LARGE",
			message: "body too big",
		},
		{
			name:    "plain error",
			err:     errors.New("kaboom"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := runErrorHandler(t, config.EnvDevelopment, http.MethodGet, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestGlobalErrorHandlerStack(t *testing.T) {
	_, body := runErrorHandler(t, config.EnvDevelopment, http.MethodGet, errors.New("kaboom"))
	assert.Contains(t, body.Error.Stack, "kaboom")

	_, body = runErrorHandler(t, config.EnvDevelopment, http.MethodGet, errs.NewNotFoundError("", nil))
	assert.Empty(t, body.Error.Stack, "classified errors never carry a stack")
}

func TestGlobalErrorHandlerProduction(t *testing.T) {
	rec, body := runErrorHandler(t, config.EnvProduction, http.MethodGet, errors.New("password=hunter2"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
	assert.Empty(t, body.Error.Stack)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	_, body = runErrorHandler(t, config.EnvProduction, http.MethodGet, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "limit 1M exceeded"))
	assert.Equal(t, "the request could not be processed", body.Error.Message)
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", body.Error.Code)
}

func TestGlobalErrorHandlerFieldErrors(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	_, body := runErrorHandler(t, config.EnvTest, http.MethodGet, err)

	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "email", Error: "already exists"}, body.Error.Errors[0])
}

func TestGlobalErrorHandlerHead(t *testing.T) {
	rec, _ := runErrorHandler(t, config.EnvTest, http.MethodHead, errs.NewNotFoundError("", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestGlobalErrorHandlerCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	NewGlobalMiddlewares(newTestServer(config.EnvTest)).GlobalErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
