package fitness

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/sqlite"
)

var (
	// ErrNotFound is returned when a catalog record does not exist.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrProfileNotFound is returned when a user has no stored fitness profile.
	ErrProfileNotFound = errors.NewSentinel("profile not found")
)

// ProfileStore resolves and persists fitness profiles.
type ProfileStore interface {
	// Get returns ErrProfileNotFound when the user has no profile.
	Get(ctx context.Context, userID string) (FitnessProfile, error)
	Save(ctx context.Context, profile FitnessProfile) error
}

// baseRepository provides common database access for the SQLite repositories.
type baseRepository struct {
	db *sqlite.Database
}

func newBaseRepository(db *sqlite.Database) baseRepository {
	return baseRepository{db: db}
}

// repositoryFactory creates the SQLite repositories sharing one database.
type repositoryFactory struct {
	db *sqlite.Database
}

func newRepositoryFactory(db *sqlite.Database) *repositoryFactory {
	return &repositoryFactory{db: db}
}

func (f *repositoryFactory) newProfileRepository() *sqliteProfileRepository {
	return newSQLiteProfileRepository(f.db)
}

func (f *repositoryFactory) newCatalogRepository() *sqliteCatalogRepository {
	return newSQLiteCatalogRepository(f.db)
}

// encodeSet encodes a set-valued column. A nil slice is stored as an empty array.
func encodeSet[T any](values []T) (string, error) {
	if values == nil {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", errors.Wrap(err, "marshal set column")
	}
	return string(b), nil
}

func decodeSet[T any](raw string) ([]T, error) {
	var values []T
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, errors.Wrap(err, "unmarshal set column")
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{Float64: 0, Valid: false}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func closeRows(rows *sql.Rows, err *error) {
	if closeErr := rows.Close(); closeErr != nil {
		*err = errors.Join(*err, errors.Wrap(closeErr, "close rows"))
	}
}
