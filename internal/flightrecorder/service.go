// Package flightrecorder keeps a rolling execution trace in memory and writes it to disk when a request misses
// its deadline, so slow plan generation can be inspected with go tool trace.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
)

const (
	defaultMinAge   = 2 * time.Minute
	defaultMaxBytes = 32 << 20
	defaultCooldown = 15 * time.Minute
)

// Recorder captures traces for requests that time out.
type Recorder struct {
	logger   *slog.Logger
	fr       *trace.FlightRecorder
	dir      string
	cooldown time.Duration
	// lastCapture is the unix nano timestamp of the last written trace.
	lastCapture atomic.Int64
	now         func() time.Time
}

// Config configures a Recorder. Zero durations and sizes fall back to defaults.
type Config struct {
	Dir      string
	MinAge   time.Duration
	MaxBytes uint64
	Cooldown time.Duration
}

// New creates a Recorder writing traces to cfg.Dir. The directory is created when missing.
func New(logger *slog.Logger, cfg Config) (*Recorder, error) {
	if cfg.Dir == "" {
		return nil, errors.New("trace directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil { //nolint:mnd // owner only.
		return nil, errors.Wrap(err, "create trace directory", slog.String("dir", cfg.Dir))
	}
	if cfg.MinAge == 0 {
		cfg.MinAge = defaultMinAge
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = defaultCooldown
	}
	return &Recorder{
		logger:      logger,
		fr:          trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: cfg.MinAge, MaxBytes: cfg.MaxBytes}),
		dir:         cfg.Dir,
		cooldown:    cfg.Cooldown,
		lastCapture: atomic.Int64{},
		now:         time.Now,
	}, nil
}

// Start begins recording. Only one flight recorder can be active per process.
func (r *Recorder) Start(ctx context.Context) error {
	if err := r.fr.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", r.dir), slog.Duration("cooldown", r.cooldown))
	return nil
}

func (r *Recorder) Stop(ctx context.Context) {
	r.fr.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to a file named after reason. Captures within the cooldown of the previous
// one are skipped and report an empty path.
func (r *Recorder) Capture(ctx context.Context, reason string) (string, error) {
	now := r.now()
	last := r.lastCapture.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < r.cooldown {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "trace capture in cooldown", slog.String("reason", reason))
		return "", nil
	}
	if !r.lastCapture.CompareAndSwap(last, now.UnixNano()) {
		return "", nil
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s-%s.trace", sanitize(reason), now.UTC().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create trace file", slog.String("path", path))
	}
	n, err := r.fr.WriteTo(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", errors.Wrap(err, "write trace file", slog.String("path", path))
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("reason", reason), slog.String("path", path), slog.Int64("bytes", n))
	return path, nil
}

// sanitize turns reason into a file name fragment.
func sanitize(reason string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, reason)
	s = strings.Trim(s, "-")
	if s == "" {
		return "trace"
	}
	return s
}
