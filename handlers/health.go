// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/models"
)

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewHealthHandler handles GET /health, reporting degraded when the database
// does not answer
func NewHealthHandler(db HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := models.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Services:  map[string]string{"database": "healthy"},
		}

		status := http.StatusOK
		if err := db.Health(r.Context()); err != nil {
			slog.Error("database health check failed", "error", err)
			resp.Status = "degraded"
			resp.Services["database"] = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		middleware.JSONResponse(w, status, resp)
	}
}
