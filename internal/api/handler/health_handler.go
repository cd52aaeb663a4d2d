package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	serviceName    = "Food Market Platform API"
	serviceVersion = "1.0.0"
	readyTimeout   = 3 * time.Second
)

// Pinger is satisfied by the Mongo and Redis adapters.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the banner, liveness and readiness probes.
type HealthHandler struct {
	deps  map[string]Pinger
	gauge *prometheus.GaugeVec
	log   zerolog.Logger
}

// NewHealthHandler checks each named dependency on readiness and records the
// result in gauge, which may be nil. Ping failures are logged, never returned
// to the caller.
func NewHealthHandler(deps map[string]Pinger, gauge *prometheus.GaugeVec, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{deps: deps, gauge: gauge, log: log}
}

type readinessResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Root handles GET /.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, bannerResponse{Message: serviceName, Version: serviceVersion})
}

// Liveness handles GET /health. It confirms the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. It pings every dependency.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			deps[name] = "down"
			healthy = false
			h.observe(name, 0)
			continue
		}
		deps[name] = "ok"
		h.observe(name, 1)
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func (h *HealthHandler) observe(name string, v float64) {
	if h.gauge != nil {
		h.gauge.WithLabelValues(name).Set(v)
	}
}
