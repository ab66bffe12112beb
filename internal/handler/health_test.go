package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/config"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newHealthHandler(checks ...healthCheck) *HealthHandler {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: config.EnvTest},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
	h := NewHealthHandler(s)
	h.checks = checks
	return h
}

func pingOK(context.Context) error { return nil }

func pingFail(context.Context) error { return errors.New("connection refused") }

func TestLiveness(t *testing.T) {
	h := newHealthHandler(healthCheck{name: "database", required: true, ping: pingFail})

	c, rec := newContext(http.MethodGet, "/health", "")
	require.NoError(t, h.Liveness(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", gjson.Get(rec.Body.String(), "status").String())
	ts, err := time.Parse(time.RFC3339Nano, gjson.Get(rec.Body.String(), "timestamp").String())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name    string
		checks  []healthCheck
		status  int
		result  string
		message string
	}{
		{
			name: "all healthy",
			checks: []healthCheck{
				{name: "database", required: true, ping: pingOK},
				{name: "redis", ping: pingOK},
			},
			status: http.StatusOK,
			result: "healthy",
		},
		{
			name: "database down",
			checks: []healthCheck{
				{name: "database", required: true, ping: pingFail},
				{name: "redis", ping: pingOK},
			},
			status:  http.StatusServiceUnavailable,
			result:  "unhealthy",
			message: "service unavailable",
		},
		{
			name: "optional redis down",
			checks: []healthCheck{
				{name: "database", required: true, ping: pingOK},
				{name: "redis", ping: pingFail},
			},
			status: http.StatusOK,
			result: "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHealthHandler(tt.checks...)
			c, rec := newContext(http.MethodGet, "/status", "")
			require.NoError(t, h.CheckHealth(c))

			body := rec.Body.String()
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.result, gjson.Get(body, "status").String())
			assert.Equal(t, tt.message, gjson.Get(body, "message").String())
			assert.Equal(t, config.EnvTest, gjson.Get(body, "environment").String())
			for _, check := range tt.checks {
				assert.True(t, gjson.Get(body, "checks."+check.name+".status").Exists())
			}
		})
	}
}

func TestCheckHealthTimesOut(t *testing.T) {
	h := newHealthHandler(healthCheck{name: "database", required: true, ping: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	h.timeout = 10 * time.Millisecond

	c, rec := newContext(http.MethodGet, "/status", "")
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "checks.database.error").String(), "deadline exceeded")
}

func TestOpenAPIUI(t *testing.T) {
	h := NewOpenAPIHandler(nil)
	c, rec := newContext(http.MethodGet, "/docs", "")
	require.NoError(t, h.ServeOpenAPIUI(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}
