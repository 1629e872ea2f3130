package handlers

import (
	"context"
	"net/http"
	"time"

	appdb "nutriplan/internal/db"
	applog "nutriplan/internal/log"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Time   time.Time         `json:"time"`
	Checks map[string]string `json:"checks"`
}

// Health reports readiness of the database, the plan services and the AI drafter.
// Only a failing database makes the check unhealthy.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
		Checks: map[string]string{
			"database": "disabled",
			"planning": "disabled",
			"ai":       "disabled",
		},
	}

	if database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		err := appdb.Ping(ctx, database)
		cancel()
		if err != nil {
			applog.Error(r.Context(), "health check database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Checks["database"] = "unavailable"
		} else {
			resp.Checks["database"] = "ok"
		}
	}
	if planningReady() {
		resp.Checks["planning"] = "ok"
	}
	if planning.Drafter != nil {
		resp.Checks["ai"] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	applog.Debug(r.Context(), "health check", "status", resp.Status)
	writeJSON(w, status, resp)
}
