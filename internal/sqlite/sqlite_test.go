package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/myrjola/fitplanner/internal/sqlite"
	"github.com/myrjola/fitplanner/internal/testhelpers"
)

func TestNewDatabase_Idempotent(t *testing.T) {
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	url := filepath.Join(t.TempDir(), "fitplanner.sqlite3")

	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "UPDATE exercises SET name = 'Curated Push-Up' WHERE id = 'ex-push-up'"); err != nil {
		t.Fatalf("update exercise: %v", err)
	}
	if err = db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		t.Fatalf("NewDatabase() on existing database error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var version, exercises int
	if err = db.ReadOnly.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != 1 {
		t.Errorf("user_version = %d, want 1", version)
	}
	if err = db.ReadOnly.QueryRowContext(ctx, "SELECT count(*) FROM exercises").Scan(&exercises); err != nil {
		t.Fatalf("count exercises: %v", err)
	}
	if exercises != 27 {
		t.Errorf("got %d exercises, want the 27 starter exercises once", exercises)
	}
	var name string
	if err = db.ReadOnly.QueryRowContext(ctx, "SELECT name FROM exercises WHERE id = 'ex-push-up'").
		Scan(&name); err != nil {
		t.Fatalf("query exercise: %v", err)
	}
	if name != "Curated Push-Up" {
		t.Errorf("fixtures overwrote a curated exercise: name = %q", name)
	}
}

func TestNewDatabase_NewerSchema(t *testing.T) {
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	url := filepath.Join(t.TempDir(), "fitplanner.sqlite3")

	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump user_version: %v", err)
	}
	_ = db.Close()

	if _, err = sqlite.NewDatabase(ctx, url, logger); err == nil {
		t.Error("NewDatabase() accepted a database from a newer release")
	}
}
