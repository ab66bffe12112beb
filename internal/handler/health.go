package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/middleware"
	"github.com/maprangsoft/crudapi/internal/server"
)

// healthCheck is one dependency probed by /status. A failing required check
// makes the service unready; an optional one is only reported.
type healthCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// LivenessResponse is the /health body.
type LivenessResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// ReadinessResponse is the /status body. Message is set, in the request
// locale, only when the service is unready.
type ReadinessResponse struct {
	Status      string                 `json:"status"`
	Message     string                 `json:"message,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// HealthHandler serves /health (liveness) and /status (readiness).
type HealthHandler struct {
	Handler
	checks  []healthCheck
	timeout time.Duration
}

// NewHealthHandler registers the database check and, when Redis is
// configured, the Redis check, subject to observability.health_checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: 5 * time.Second,
	}

	obs := s.Config.Observability
	if obs != nil && obs.HealthChecks.Timeout > 0 {
		h.timeout = obs.HealthChecks.Timeout
	}
	enabled := func(name string) bool {
		return obs == nil || obs.ChecksEnabled(name)
	}

	if s.DB != nil && enabled("database") {
		h.checks = append(h.checks, healthCheck{name: "database", required: true, ping: s.DB.Ping})
	}
	if s.Redis != nil && enabled("redis") {
		redisClient := s.Redis
		h.checks = append(h.checks, healthCheck{name: "redis", ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	return h
}

// Liveness reports that the process is serving requests. It never touches
// the database.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, LivenessResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// CheckHealth runs the dependency checks. It returns 200 when every required
// check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := ReadinessResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}
	healthy := true

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()
		elapsed := time.Since(checkStart)

		if err != nil {
			response.Checks[check.name] = CheckResult{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}
			if check.required {
				healthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordEvent(map[string]any{
				"check_type":       check.name,
				"operation":        "health_check",
				"error_type":       check.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		response.Checks[check.name] = CheckResult{
			Status:       "healthy",
			ResponseTime: elapsed.String(),
		}
		logger.Debug().
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !healthy {
		response.Status = "unhealthy"
		response.Message = i18n.Ctx(c.Request().Context(), i18n.ErrServiceUnavailable)
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("readiness check failed")

		h.recordEvent(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordEvent(params map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}
