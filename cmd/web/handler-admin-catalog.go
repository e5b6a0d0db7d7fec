package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
)

const (
	// reloadBurst reloads may run back to back, after which one more is allowed every reloadRefill.
	reloadBurst  = 3
	reloadRefill = 10 * time.Second
)

type reloadResponse struct {
	Reloaded bool                  `json:"reloaded"`
	Error    string                `json:"error,omitempty"`
	Catalog  fitness.CatalogStatus `json:"catalog"`
}

func (app *application) catalogStatusGET(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.service.CatalogStatus())
}

// catalogReloadPOST re-reads the catalogs. A failed reload responds with 503 and the still active snapshot.
func (app *application) catalogReloadPOST(w http.ResponseWriter, r *http.Request) {
	if !app.reloadLimiter.Allow() {
		w.Header().Set("Retry-After", "10")
		app.writeJSON(w, r, http.StatusTooManyRequests, errorResponse{Error: "too many reloads", Fields: nil})
		return
	}
	if err := app.service.ReloadCatalogs(r.Context()); err != nil {
		if !errors.Is(err, fitness.ErrCatalogLoadFailure) {
			app.serverError(w, r, err)
			return
		}
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "catalog reload failed", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusServiceUnavailable, reloadResponse{
			Reloaded: false,
			Error:    "catalog load failure",
			Catalog:  app.service.CatalogStatus(),
		})
		return
	}
	app.writeJSON(w, r, http.StatusOK, reloadResponse{
		Reloaded: true,
		Error:    "",
		Catalog:  app.service.CatalogStatus(),
	})
}
