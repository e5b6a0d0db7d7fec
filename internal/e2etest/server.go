package e2etest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/myrjola/fitplanner/internal/logging"
)

const (
	// LogAddrKey is the log attribute holding the address the server listens on.
	LogAddrKey = "addr"
	// LogDsnKey is the log attribute holding the read-write SQLite DSN. Tests use it to edit the catalog tables.
	LogDsnKey = "sqlDsn"
)

// RunFunc has the signature of the run function in cmd/web.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// Server is a running API server backed by its own database.
type Server struct {
	url        string
	client     *Client
	db         *sql.DB
	cancel     context.CancelCauseFunc
	serverDone chan struct{}
}

// startupValue captures the first logged value of a log attribute.
type startupValue struct {
	once sync.Once
	ch   chan string
}

func newStartupValue() *startupValue {
	return &startupValue{once: sync.Once{}, ch: make(chan string, 1)}
}

func (v *startupValue) capture(a slog.Attr) {
	v.once.Do(func() { v.ch <- a.Value.String() })
}

// StartServer runs the server until t finishes and returns once /api/healthy responds.
//
// Server logs go to logSink, usually a testhelpers.Writer. run must log LogAddrKey once it listens and the database
// must log LogDsnKey when it opens.
func StartServer(
	t *testing.T,
	logSink io.Writer,
	lookupEnv func(string) (string, bool),
	run RunFunc,
) (*Server, error) {
	var server *Server
	t.Cleanup(func() {
		if server != nil {
			server.Shutdown()
		}
	})

	ctx, cancel := context.WithCancelCause(t.Context())
	addr, dsn := newStartupValue(), newStartupValue()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case LogAddrKey:
				addr.capture(a)
			case LogDsnKey:
				dsn.capture(a)
			}
			return a
		},
	})))

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel(err)
		}
	}()

	var serverAddr, sqlDsn string
	for serverAddr == "" || sqlDsn == "" {
		select {
		case <-ctx.Done():
			cancel(nil)
			<-serverDone
			return nil, fmt.Errorf("server stopped before it was ready: %w", context.Cause(ctx))
		case serverAddr = <-addr.ch:
		case sqlDsn = <-dsn.ch:
		}
	}

	url := "http://" + serverAddr
	client := NewClient(url)
	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		cancel(err)
		<-serverDone
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	db, err := sql.Open("sqlite3", sqlDsn)
	if err != nil {
		cancel(err)
		<-serverDone
		return nil, fmt.Errorf("open database: %w", err)
	}

	server = &Server{
		url:        url,
		client:     client,
		db:         db,
		cancel:     cancel,
		serverDone: serverDone,
	}
	return server, nil
}

func (s *Server) Client() *Client {
	return s.client
}

func (s *Server) URL() string {
	return s.url
}

// DB is a read-write connection to the server's database.
func (s *Server) DB() *sql.DB {
	return s.db
}

// Exec runs a statement against the server's database, typically to edit the catalog before a reload.
func (s *Server) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec %q: %w", query, err)
	}
	return nil
}

// Shutdown stops the server and waits for run to return.
func (s *Server) Shutdown() {
	s.cancel(nil)
	<-s.serverDone
	_ = s.db.Close()
}
