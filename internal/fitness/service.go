package fitness

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/metrics"
	"github.com/myrjola/fitplanner/internal/sqlite"
)

// Options configure a Service.
type Options struct {
	// CatalogSource replaces the SQLite catalog tables as the source of exercises and foods.
	CatalogSource CatalogSource
	// DefaultProfile substitutes DefaultProfile for users without a stored profile instead of failing
	// with ErrProfileNotFound. Plans generated this way report UsedDefaultProfile.
	DefaultProfile bool
}

// Service generates workout plans, nutrition plans and exercise recommendations.
type Service struct {
	profiles       ProfileStore
	catalog        *Catalog
	logger         *slog.Logger
	defaultProfile bool
	now            func() time.Time
}

// NewService creates a new plan generator service. The catalog is empty until LoadCatalogs is called.
func NewService(db *sqlite.Database, logger *slog.Logger, opts Options) *Service {
	factory := newRepositoryFactory(db)
	source := opts.CatalogSource
	if source == nil {
		source = factory.newCatalogRepository()
	}
	return &Service{
		profiles:       factory.newProfileRepository(),
		catalog:        NewCatalog(source, logger),
		logger:         logger,
		defaultProfile: opts.DefaultProfile,
		now:            time.Now,
	}
}

// LoadCatalogs performs the initial catalog load. Failures are logged and leave the catalog empty.
func (s *Service) LoadCatalogs(ctx context.Context) {
	s.catalog.Load(ctx)
}

// ReloadCatalogs re-reads the catalogs. On failure the previous snapshot stays active and the returned error
// matches ErrCatalogLoadFailure.
func (s *Service) ReloadCatalogs(ctx context.Context) error {
	if err := s.catalog.Reload(ctx); err != nil {
		return errors.Wrap(err, "reload catalogs")
	}
	return nil
}

// CatalogStatus describes the active catalog snapshot.
// Available covers the snapshot as a whole. ExercisesAvailable and FoodsAvailable report each catalog, which can
// differ when only one of them ever loaded.
type CatalogStatus struct {
	Available          bool      `json:"available"`
	ExercisesAvailable bool      `json:"exercisesAvailable"`
	FoodsAvailable     bool      `json:"foodsAvailable"`
	Version   int64     `json:"version"`
	LoadedAt  time.Time `json:"loadedAt"`
	Exercises int       `json:"exercises"`
	Foods     int       `json:"foods"`
}

// CatalogStatus describes the active snapshot for the health and admin endpoints.
func (s *Service) CatalogStatus() CatalogStatus {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return CatalogStatus{} //nolint:exhaustruct // unavailable.
	}
	return CatalogStatus{
		Available:          true,
		ExercisesAvailable: snap.ExercisesLoaded(),
		FoodsAvailable:     snap.FoodsLoaded(),
		Version:            snap.Version,
		LoadedAt:           snap.LoadedAt,
		Exercises:          len(snap.Exercises),
		Foods:              len(snap.Foods),
	}
}

// GetProfile returns the stored profile or ErrProfileNotFound.
func (s *Service) GetProfile(ctx context.Context, userID string) (FitnessProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return FitnessProfile{}, errors.Wrap(err, "get profile")
	}
	return p, nil
}

// SaveProfile stores the profile. Inputs are expected to be validated by the caller.
func (s *Service) SaveProfile(ctx context.Context, p FitnessProfile) error {
	if err := s.profiles.Save(ctx, p); err != nil {
		return errors.Wrap(err, "save profile")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "saved profile",
		slog.String("fitness_level", string(p.FitnessLevel)),
		slog.Int("workout_frequency", p.WorkoutFrequency))
	return nil
}

// resolveProfile loads the profile of userID, falling back to the default profile when the policy allows it.
func (s *Service) resolveProfile(ctx context.Context, userID string) (FitnessProfile, bool, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err == nil {
		return p, false, nil
	}
	if errors.Is(err, ErrProfileNotFound) && s.defaultProfile {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "using default profile", slog.String("user_id", userID))
		return DefaultProfile(userID), true, nil
	}
	return FitnessProfile{}, false, err
}

func outcome(err error, usedDefault, catalogAvailable bool) string {
	switch {
	case err != nil:
		return "error"
	case !catalogAvailable:
		return "catalog_unavailable"
	case usedDefault:
		return "default_profile"
	}
	return "ok"
}

// GenerateWorkoutPlan builds a 7-day workout schedule for the user with overrides merged onto the stored profile.
//
// An unavailable catalog is not an error: the plan is returned with CatalogAvailable false and no exercises.
func (s *Service) GenerateWorkoutPlan(
	ctx context.Context,
	userID string,
	overrides PreferenceOverrides,
) (_ WorkoutPlan, err error) {
	start := s.now()
	var plan WorkoutPlan
	defer func() {
		metrics.RecordPlan(metrics.PlanKindWorkout, outcome(err, plan.UsedDefaultProfile, plan.CatalogAvailable),
			s.now().Sub(start))
	}()

	profile, usedDefault, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return WorkoutPlan{}, errors.Wrap(err, "resolve profile")
	}
	profile = overrides.Apply(profile)

	var exercises []ExerciseRecord
	snap, snapErr := s.catalog.Exercises()
	if snapErr == nil {
		exercises = snap.Exercises
	}
	plan = BuildWorkoutPlan(profile, exercises)
	plan.PlanID = uuid.NewString()
	plan.GeneratedAt = s.now()
	plan.UsedDefaultProfile = usedDefault
	plan.CatalogAvailable = snapErr == nil
	if snap != nil {
		plan.CatalogVersion = snap.Version
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "generated workout plan",
		slog.String("plan_id", plan.PlanID),
		slog.Int("workout_days", plan.WorkoutDays()),
		slog.Bool("relaxed_filter", plan.RelaxedFilter),
		slog.Bool("catalog_available", plan.CatalogAvailable))
	return plan, nil
}

// GenerateNutritionPlan computes calorie and macro targets and a four meal skeleton for the user.
//
// An unavailable catalog is not an error: the targets are computed and every meal is flagged NeedsData.
func (s *Service) GenerateNutritionPlan(
	ctx context.Context,
	userID string,
	overrides PreferenceOverrides,
) (_ NutritionPlan, err error) {
	start := s.now()
	var plan NutritionPlan
	defer func() {
		metrics.RecordPlan(metrics.PlanKindNutrition, outcome(err, plan.UsedDefaultProfile, plan.CatalogAvailable),
			s.now().Sub(start))
	}()

	profile, usedDefault, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return NutritionPlan{}, errors.Wrap(err, "resolve profile")
	}
	profile = overrides.Apply(profile)

	var foods []FoodRecord
	snap, snapErr := s.catalog.Foods()
	if snapErr == nil {
		foods = snap.Foods
	}
	plan = BuildNutritionPlan(profile, foods)
	plan.PlanID = uuid.NewString()
	plan.GeneratedAt = s.now()
	plan.UsedDefaultProfile = usedDefault
	plan.CatalogAvailable = snapErr == nil
	if snap != nil {
		plan.CatalogVersion = snap.Version
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "generated nutrition plan",
		slog.String("plan_id", plan.PlanID),
		slog.Int("daily_calories", plan.DailyCalories),
		slog.Bool("catalog_available", plan.CatalogAvailable))
	return plan, nil
}

// Recommendations are the best scoring exercises for a user.
type Recommendations struct {
	Exercises          []ScoredExercise `json:"exercises"`
	RelaxedFilter      bool             `json:"relaxedFilter"`
	UsedDefaultProfile bool             `json:"usedDefaultProfile"`
	CatalogAvailable   bool             `json:"catalogAvailable"`
}

// GetRecommendedExercises ranks the catalog for the user. The request filters narrow the catalog before the profile
// constraints apply and at most filters.Limit exercises, 20 by default, are returned in descending score order.
func (s *Service) GetRecommendedExercises(
	ctx context.Context,
	userID string,
	filters ExerciseFilters,
) (_ Recommendations, err error) {
	start := s.now()
	var recs Recommendations
	defer func() {
		metrics.RecordPlan(metrics.PlanKindRecommendations,
			outcome(err, recs.UsedDefaultProfile, recs.CatalogAvailable), s.now().Sub(start))
	}()

	profile, usedDefault, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return Recommendations{}, errors.Wrap(err, "resolve profile")
	}
	recs.UsedDefaultProfile = usedDefault
	recs.Exercises = []ScoredExercise{}

	snap, snapErr := s.catalog.Exercises()
	if snapErr != nil {
		return recs, nil
	}
	recs.CatalogAvailable = true

	candidates, relaxed := FilterExercises(filters.Apply(snap.Exercises), profile)
	ranked := Rank(candidates, profile)
	if len(ranked) > filters.limit() {
		ranked = ranked[:filters.limit()]
	}
	recs.Exercises = ranked
	recs.RelaxedFilter = relaxed
	return recs, nil
}

// GetExercise looks up an exercise in the active catalog.
func (s *Service) GetExercise(_ context.Context, id string) (ExerciseRecord, error) {
	snap, err := s.catalog.Exercises()
	if err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "get exercise")
	}
	ex, ok := snap.Exercise(id)
	if !ok {
		return ExerciseRecord{}, errors.Wrap(ErrNotFound, "get exercise", slog.String("exercise_id", id))
	}
	return ex, nil
}
