// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/application/adapter"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthChecker
	redis    HealthChecker
	clock    adapter.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil checker reports the dependency as not configured.
func NewHealthController(database, redis HealthChecker, clock adapter.Clock) *HealthController {
	return &HealthController{
		database: database,
		redis:    redis,
		clock:    clock,
	}
}

// Check handles GET /health requests.
// The database is required; Redis only degrades the status.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  probe(ctx, h.database),
		Redis:     probe(ctx, h.redis),
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	switch {
	case response.Database != "connected":
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case response.Redis == "disconnected":
		response.Status = "degraded"
	}

	c.JSON(status, response)
}

func probe(ctx context.Context, check HealthChecker) string {
	if check == nil {
		return "not_configured"
	}
	if err := check(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}
