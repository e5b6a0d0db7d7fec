package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/myrjola/fitplanner/internal/envstruct"
	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
	"github.com/myrjola/fitplanner/internal/flightrecorder"
	"github.com/myrjola/fitplanner/internal/logging"
	"github.com/myrjola/fitplanner/internal/sqlite"
	"github.com/yuin/goldmark"
	"golang.org/x/time/rate"
)

type application struct {
	logger         *slog.Logger
	service        *fitness.Service
	validate       *validator.Validate
	markdown       goldmark.Markdown
	reloadLimiter  *rate.Limiter
	allowedOrigins []string
	// flightRecorder is nil unless FITPLANNER_TRACES_DIR is set.
	flightRecorder *flightrecorder.Recorder
}

const (
	catalogSourceSQLite = "sqlite"
	catalogSourceFile   = "file"
)

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITPLANNER_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITPLANNER_SQLITE_URL" envDefault:"./fitplanner.sqlite3"`
	// CatalogSource selects where exercises and foods are read from, sqlite or file.
	CatalogSource string `env:"FITPLANNER_CATALOG_SOURCE" envDefault:"sqlite"`
	// CatalogDir holds exercises.json and foods.json when CatalogSource is file.
	CatalogDir string `env:"FITPLANNER_CATALOG_DIR" envDefault:"./catalog"`
	// DefaultProfile generates plans for users without a stored profile from a generic beginner profile.
	DefaultProfile bool `env:"FITPLANNER_DEFAULT_PROFILE" envDefault:"false"`
	// AllowedOrigins are the CORS origins allowed to call the API. Empty disables cross-origin requests.
	AllowedOrigins []string `env:"FITPLANNER_ALLOWED_ORIGINS" envDefault:""`
	LogLevel       string   `env:"FITPLANNER_LOG_LEVEL" envDefault:"info"`
	// ReloadInterval enables the background catalog reloader when positive.
	ReloadInterval time.Duration `env:"FITPLANNER_RELOAD_INTERVAL" envDefault:"0s"`
	// TracesDir enables the flight recorder that captures a trace when a request times out.
	TracesDir string `env:"FITPLANNER_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var opts fitness.Options
	opts.DefaultProfile = cfg.DefaultProfile
	switch cfg.CatalogSource {
	case catalogSourceSQLite:
	case catalogSourceFile:
		opts.CatalogSource = fitness.NewFileCatalogSource(cfg.CatalogDir)
	default:
		return errors.Wrap(errors.New("unknown catalog source"), "configure catalog",
			slog.String("source", cfg.CatalogSource))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(context.WithoutCancel(ctx), slog.LevelError, "failed to close db",
				errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	app := application{
		logger:         logger,
		service:        fitness.NewService(db, logger, opts),
		validate:       newValidator(),
		markdown:       goldmark.New(),
		reloadLimiter:  rate.NewLimiter(rate.Every(reloadRefill), reloadBurst),
		allowedOrigins: cfg.AllowedOrigins,
		flightRecorder: nil,
	}

	if cfg.TracesDir != "" {
		if app.flightRecorder, err = flightrecorder.New(logger, flightrecorder.Config{
			Dir:      cfg.TracesDir,
			MinAge:   0,
			MaxBytes: 0,
			Cooldown: 0,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = app.flightRecorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer app.flightRecorder.Stop(context.WithoutCancel(ctx))
	}

	app.service.LoadCatalogs(ctx)
	if cfg.ReloadInterval > 0 {
		go app.reloadCatalogsPeriodically(ctx, cfg.ReloadInterval)
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// loadDotEnv loads a .env file from the working directory into the process environment when one exists.
// Variables that are already set win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}
	return nil
}

func main() {
	ctx := context.Background()
	bootstrapLogger := logging.NewLogger(os.Stdout, slog.LevelInfo)
	if err := loadDotEnv(); err != nil {
		bootstrapLogger.LogAttrs(ctx, slog.LevelError, "failure loading environment", errors.SlogError(err))
		os.Exit(1)
	}
	level, err := logging.ParseLevel(os.Getenv("FITPLANNER_LOG_LEVEL"))
	if err != nil {
		bootstrapLogger.LogAttrs(ctx, slog.LevelError, "invalid log level", errors.SlogError(err))
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stdout, level)
	if err = run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
