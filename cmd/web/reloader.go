package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
)

// reloadCatalogsPeriodically reloads the catalogs every interval until ctx is done.
// Failures are logged and the previous snapshot stays active.
func (app *application) reloadCatalogsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	app.logger.LogAttrs(ctx, slog.LevelInfo, "catalog reloader started", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := app.service.ReloadCatalogs(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			app.logger.LogAttrs(ctx, slog.LevelWarn, "periodic catalog reload failed", errors.SlogError(err))
		}
	}
}
