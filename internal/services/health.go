package services

import (
	"net/http"

	"leadcapture/internal/database"
)

type healthResult struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

// health handles GET /health
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if err := database.HealthCheck(r.Context(), a.db); err != nil {
		a.log.WithError(err).Warn("health check failed")
		a.respondError(w, r, http.StatusServiceUnavailable, "Service unavailable", map[string]any{
			"database": "disconnected",
		})
		return
	}

	a.respond(w, r, http.StatusOK, a.app.Name+" Backend API is running", healthResult{
		Status:      "OK",
		Version:     a.app.Version,
		Environment: a.app.Environment,
		Database:    "connected",
	}, nil)
}
