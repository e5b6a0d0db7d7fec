package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/myrjola/fitplanner/internal/fitness"
)

type healthResponse struct {
	Status  string                `json:"status"`
	Catalog fitness.CatalogStatus `json:"catalog"`
}

// healthy responds with 200 as long as the server runs. An unavailable catalog degrades plans but is not unhealthy.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Catalog: app.service.CatalogStatus()})
}

// testTimeout is a handler for testing timeout functionality.
// It accepts a query parameter sleep_ms to control how long it sleeps.
func (app *application) testTimeout(w http.ResponseWriter, r *http.Request) {
	sleepMs, err := strconv.Atoi(r.URL.Query().Get("sleep_ms"))
	if err != nil || sleepMs < 0 {
		http.Error(w, "Invalid sleep_ms parameter", http.StatusBadRequest)
		return
	}

	select {
	case <-time.After(time.Duration(sleepMs) * time.Millisecond):
	case <-r.Context().Done():
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string]any{"status": "completed", "slept_ms": sleepMs})
}
