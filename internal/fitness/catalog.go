package fitness

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/metrics"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrCatalogUnavailable means the requested catalog never loaded successfully.
	ErrCatalogUnavailable = errors.NewSentinel("catalog unavailable")
	// ErrCatalogLoadFailure means at least one catalog failed to reload. The previous records stay active.
	ErrCatalogLoadFailure = errors.NewSentinel("catalog load failure")
)

// CatalogSource loads the exercise and food catalogs from a backing store.
type CatalogSource interface {
	LoadExercises(ctx context.Context) ([]ExerciseRecord, error)
	LoadFoods(ctx context.Context) ([]FoodRecord, error)
}

// CatalogSnapshot is an immutable view of both catalogs. It must not be modified after it has been published.
type CatalogSnapshot struct {
	Version   int64
	LoadedAt  time.Time
	Exercises []ExerciseRecord
	Foods     []FoodRecord
	byID      map[string]int
	// A catalog that never loaded is empty but must not be mistaken for one that loaded with no records.
	exercisesLoaded bool
	foodsLoaded     bool
}

// Exercise looks up an exercise by ID.
func (s *CatalogSnapshot) Exercise(id string) (ExerciseRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return ExerciseRecord{}, false
	}
	return s.Exercises[i], true
}

// ExercisesLoaded reports whether the exercise catalog has loaded at least once.
func (s *CatalogSnapshot) ExercisesLoaded() bool { return s.exercisesLoaded }

// FoodsLoaded reports whether the food catalog has loaded at least once.
func (s *CatalogSnapshot) FoodsLoaded() bool { return s.foodsLoaded }

func newSnapshot(
	version int64,
	loadedAt time.Time,
	exercises []ExerciseRecord,
	foods []FoodRecord,
	exercisesLoaded, foodsLoaded bool,
) *CatalogSnapshot {
	byID := make(map[string]int, len(exercises))
	for i, ex := range exercises {
		byID[ex.ID] = i
	}
	return &CatalogSnapshot{
		Version:         version,
		LoadedAt:        loadedAt,
		Exercises:       exercises,
		Foods:           foods,
		byID:            byID,
		exercisesLoaded: exercisesLoaded,
		foodsLoaded:     foodsLoaded,
	}
}

// Catalog holds the active catalog snapshot.
//
// Readers load the snapshot without locking. Reloads are serialized and publish a fully built snapshot with
// a single atomic store so readers never observe a half updated catalog.
type Catalog struct {
	source   CatalogSource
	logger   *slog.Logger
	snapshot atomic.Pointer[CatalogSnapshot]
	reloadMu sync.Mutex
	now      func() time.Time
}

// NewCatalog returns an empty catalog reading from source. Call Load or Reload to populate it.
func NewCatalog(source CatalogSource, logger *slog.Logger) *Catalog {
	return &Catalog{ //nolint:exhaustruct // snapshot and mutex start empty.
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Load populates the catalog at startup. Failures are logged and leave the catalog as it was.
func (c *Catalog) Load(ctx context.Context) {
	if err := c.Reload(ctx); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "initial catalog load failed", errors.SlogError(err))
	}
}

// Reload re-reads both catalogs and swaps in a new snapshot.
//
// Each catalog is replaced all-or-nothing: a catalog that fails to load keeps the records of the previous snapshot
// and the failure is returned wrapped in ErrCatalogLoadFailure. When both fail nothing is published.
func (c *Catalog) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	start := c.now()
	var (
		g                    errgroup.Group
		exercises            []ExerciseRecord
		foods                []FoodRecord
		exerciseErr, foodErr error
	)
	// A failing catalog must not cancel the other one, so the loads report through their own variables.
	g.Go(func() error {
		exercises, exerciseErr = c.source.LoadExercises(ctx)
		exerciseErr = errors.Wrap(exerciseErr, "load exercises")
		return nil
	})
	g.Go(func() error {
		foods, foodErr = c.source.LoadFoods(ctx)
		foodErr = errors.Wrap(foodErr, "load foods")
		return nil
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "load catalogs")
	}
	metrics.RecordCatalogLoad(metrics.CatalogExercises, exerciseErr)
	metrics.RecordCatalogLoad(metrics.CatalogFoods, foodErr)

	prev := c.snapshot.Load()
	if exerciseErr != nil && foodErr != nil {
		return errors.Wrap(errors.Join(ErrCatalogLoadFailure, exerciseErr, foodErr), "reload catalogs")
	}

	var (
		version         int64 = 1
		exercisesLoaded       = exerciseErr == nil
		foodsLoaded           = foodErr == nil
	)
	if exerciseErr != nil {
		exercises = nil
	}
	if foodErr != nil {
		foods = nil
	}
	if prev != nil {
		version = prev.Version + 1
		if exerciseErr != nil {
			exercises, exercisesLoaded = prev.Exercises, prev.exercisesLoaded
		}
		if foodErr != nil {
			foods, foodsLoaded = prev.Foods, prev.foodsLoaded
		}
	}
	if exerciseErr == nil {
		exercises = withInferredGoals(exercises)
	}

	next := newSnapshot(version, c.now(), exercises, foods, exercisesLoaded, foodsLoaded)
	c.snapshot.Store(next)
	metrics.UpdateCatalogGauges(next.Version, len(next.Exercises), len(next.Foods))
	c.logger.LogAttrs(ctx, slog.LevelInfo, "catalog snapshot published",
		slog.Int64("version", next.Version),
		slog.Int("exercises", len(next.Exercises)),
		slog.Int("foods", len(next.Foods)),
		slog.Duration("duration", c.now().Sub(start)))

	if err := errors.Join(exerciseErr, foodErr); err != nil {
		return errors.Wrap(errors.Join(ErrCatalogLoadFailure, err), "reload catalogs",
			slog.Int64("version", next.Version))
	}
	return nil
}

// Snapshot returns the active snapshot or ErrCatalogUnavailable when nothing has been loaded yet.
func (c *Catalog) Snapshot() (*CatalogSnapshot, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrCatalogUnavailable
	}
	return s, nil
}

// Exercises returns the active snapshot or ErrCatalogUnavailable when the exercise catalog never loaded.
func (c *Catalog) Exercises() (*CatalogSnapshot, error) {
	s := c.snapshot.Load()
	if s == nil || !s.exercisesLoaded {
		return s, ErrCatalogUnavailable
	}
	return s, nil
}

// Foods returns the active snapshot or ErrCatalogUnavailable when the food catalog never loaded.
func (c *Catalog) Foods() (*CatalogSnapshot, error) {
	s := c.snapshot.Load()
	if s == nil || !s.foodsLoaded {
		return s, ErrCatalogUnavailable
	}
	return s, nil
}

// withInferredGoals returns a copy of exercises where untagged records get goals inferred from their category.
func withInferredGoals(exercises []ExerciseRecord) []ExerciseRecord {
	out := make([]ExerciseRecord, len(exercises))
	for i, ex := range exercises {
		if len(ex.Goals) == 0 {
			ex.Goals = InferGoals(ex.Category)
		}
		out[i] = ex
	}
	return out
}
