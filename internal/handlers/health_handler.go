package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/budgettracker/expense-api/internal/models"
)

const healthCheckTimeout = 3 * time.Second

// statsProvider is implemented by stores that expose connection pool stats.
type statsProvider interface {
	Stats() map[string]interface{}
}

type dbHealthResponse struct {
	Status string                 `json:"status"`
	Error  string                 `json:"error,omitempty"`
	Pools  map[string]interface{} `json:"pools,omitempty"`
}

func (a *API) Home(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Backend is running!"})
}

// DBHealth reports database reachability inline with a 200 either way.
func (a *API) DBHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := a.store.Ping(ctx); err != nil {
		a.log.Warn("Database health check failed: %v", err)
		respondJSON(w, http.StatusOK, dbHealthResponse{
			Status: "Failed to connect",
			Error:  "database unreachable",
		})
		return
	}

	resp := dbHealthResponse{Status: "Database connected successfully!"}
	if sp, ok := a.store.(statsProvider); ok {
		resp.Pools = sp.Stats()
	}
	respondJSON(w, http.StatusOK, resp)
}
