package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/logging"
	"github.com/myrjola/fitplanner/internal/metrics"
	"github.com/rs/cors"
)

// statusResponseWriter remembers the first status code and counts the body bytes for the request log.
type statusResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{ResponseWriter: w, status: 0, bytes: 0}
}

func (sw *statusResponseWriter) WriteHeader(status int) {
	if sw.status == 0 {
		sw.status = status
	}
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusResponseWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

// statusCode is 200 when the handler wrote nothing.
func (sw *statusResponseWriter) statusCode() int {
	if sw.status == 0 {
		return http.StatusOK
	}
	return sw.status
}

func (sw *statusResponseWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// secureHeaders sets headers suitable for a JSON API that is never framed or rendered as a document.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")

		next.ServeHTTP(w, r)
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

// logAndTraceRequest adds the request attributes to the logging context, logs the outcome, records request metrics,
// and wraps the request in a runtime/trace task when tracing is enabled.
func (app *application) logAndTraceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		ctx := r.Context()
		traceID := rand.Text()
		ctx = logging.WithAttrs(
			ctx,
			slog.String("trace_id", traceID),
			slog.String("proto", proto),
			slog.String("method", method),
			slog.String("uri", uri),
		)
		r = r.WithContext(ctx)

		start := time.Now()
		app.logger.LogAttrs(ctx, slog.LevelDebug, "received request")

		sw := newStatusResponseWriter(w)

		if !trace.IsEnabled() {
			next.ServeHTTP(sw, r)
		} else {
			traceCtx, task := trace.NewTask(ctx, "HTTP "+r.Pattern)
			trace.Log(traceCtx, "trace_id", traceID)
			defer func() {
				trace.Log(traceCtx, "response", fmt.Sprintf("status=%d duration=%v", sw.statusCode(), time.Since(start)))
				task.End()
			}()

			r = r.WithContext(traceCtx)
			next.ServeHTTP(sw, r)
		}

		duration := time.Since(start)
		status := sw.statusCode()
		metrics.RecordAPIRequest(method, r.Pattern, strconv.Itoa(status), duration)
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		app.logger.LogAttrs(ctx, level, "request completed",
			slog.String("pattern", r.Pattern),
			slog.Int("status_code", status),
			slog.Int("response_bytes", sw.bytes),
			slog.Duration("duration", duration))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if excp := recover(); excp != nil {
				app.serverError(w, r, errors.DecoratePanic(excp))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

const timeoutBody = `{"error":"request timed out"}`

// timeout cancels the request context a little before the server write deadline and responds with 503.
// When the flight recorder is enabled the recorded trace is written to disk for requests that miss the deadline.
func (app *application) timeout(next http.Handler) http.Handler {
	handlerTimeout := defaultTimeout - 200*time.Millisecond //nolint:mnd // writing the response takes time.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
		defer cancel()
		w.Header().Set("Content-Type", "application/json")
		http.TimeoutHandler(next, handlerTimeout, timeoutBody).ServeHTTP(w, r.WithContext(ctx))

		if app.flightRecorder != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			if _, err := app.flightRecorder.Capture(r.Context(), "timeout "+r.Pattern); err != nil {
				app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to capture trace", errors.SlogError(err))
			}
		}
	})
}

// cors allows the configured origins to call the API from a browser. Without configured origins cross-origin
// requests get no CORS headers at all.
func (app *application) cors(next http.Handler) http.Handler {
	if len(app.allowedOrigins) == 0 {
		return next
	}
	return cors.New(cors.Options{ //nolint:exhaustruct // defaults for the rest.
		AllowedOrigins:   app.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           600, //nolint:mnd // ten minutes.
	}).Handler(next)
}
