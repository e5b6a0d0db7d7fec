package fitness

import (
	"math"
	"slices"
	"strings"
)

// Split is the muscle group focus of a workout day.
type Split string

const (
	SplitPush          Split = "push"
	SplitPull          Split = "pull"
	SplitLegs          Split = "legs"
	SplitShouldersCore Split = "shoulders_core"
	SplitFullBody      Split = "full_body"
)

// splitRotation is indexed by the number of workout days already assigned.
var splitRotation = [...]Split{ //nolint:gochecknoglobals // fixed rotation.
	SplitPush, SplitPull, SplitLegs, SplitShouldersCore, SplitFullBody,
}

// Muscles returns the primary muscles the split targets.
func (s Split) Muscles() []string {
	switch s {
	case SplitPush:
		return []string{"chest", "shoulders", "triceps"}
	case SplitPull:
		return []string{"back", "lats", "biceps", "traps"}
	case SplitLegs:
		return []string{"quadriceps", "hamstrings", "glutes", "calves"}
	case SplitShouldersCore:
		return []string{"shoulders", "core", "abs", "obliques"}
	case SplitFullBody:
		return []string{"chest", "back", "quadriceps", "hamstrings", "glutes", "shoulders", "core"}
	}
	return nil
}

func (s Split) targets(ex ExerciseRecord) bool {
	return slices.ContainsFunc(ex.MuscleGroups.Primary, func(m string) bool {
		return slices.Contains(s.Muscles(), strings.ToLower(strings.TrimSpace(m)))
	})
}

const (
	defaultWorkoutMinutes = 45
	defaultSets           = 3
	defaultReps           = 10
	defaultRestSeconds    = 60
	secondsPerRep         = 3
	minSplitMatches       = 5
	maxExercisesPerDay    = 8
	minutesPerExercise    = 6
)

// restDays returns the fixed rest days of p. Sunday is the default.
func restDays(p FitnessProfile) []Day {
	if p.Preferences.RestDays == nil {
		return []Day{Sunday}
	}
	return p.Preferences.RestDays
}

func workoutMinutes(p FitnessProfile) int {
	if p.Preferences.WorkoutDuration <= 0 {
		return defaultWorkoutMinutes
	}
	return p.Preferences.WorkoutDuration
}

// AssembleWeek lays out Monday through Sunday. Fixed rest days are always rest, the other days are workout days
// cycling through the split rotation until WorkoutFrequency is reached, and the remaining days are rest.
func AssembleWeek(ranked []ScoredExercise, p FitnessProfile) [7]DaySchedule {
	var (
		week     [7]DaySchedule
		rest     = restDays(p)
		assigned int
		minutes  = workoutMinutes(p)
	)
	for i, day := range Week {
		if slices.Contains(rest, day) || assigned >= p.WorkoutFrequency {
			week[i] = DaySchedule{Day: day, Kind: DayKindRest} //nolint:exhaustruct // rest days carry no workout.
			continue
		}
		split := splitRotation[assigned%len(splitRotation)]
		week[i] = planWorkoutDay(day, split, ranked, minutes)
		assigned++
	}
	return week
}

func planWorkoutDay(day Day, split Split, ranked []ScoredExercise, minutes int) DaySchedule {
	pool := make([]ScoredExercise, 0, len(ranked))
	for _, se := range ranked {
		if split.targets(se.Exercise) {
			pool = append(pool, se)
		}
	}
	usedFallback := false
	if len(pool) < minSplitMatches {
		pool = ranked
		usedFallback = true
	}

	var (
		budget    = minutes * 60 //nolint:mnd // seconds.
		limit     = min(minutes/minutesPerExercise, maxExercisesPerDay)
		exercises []PlannedExercise
		total     int
		calories  float64
	)
	for _, se := range pool {
		if len(exercises) >= limit {
			break
		}
		planned := prescribe(se)
		if total+planned.EstimatedSeconds > budget {
			continue
		}
		exercises = append(exercises, planned)
		total += planned.EstimatedSeconds
		calories += se.Exercise.CaloriesPerMinute * float64(planned.EstimatedSeconds) / 60 //nolint:mnd // minutes.
	}

	return DaySchedule{
		Day:                      day,
		Kind:                     DayKindWorkout,
		Split:                    split,
		Exercises:                exercises,
		EstimatedDurationSeconds: total,
		EstimatedCalories:        int(math.Round(calories)),
		UsedFallback:             usedFallback,
		NeedsData:                len(exercises) == 0,
	}
}

// prescribe fills in the default sets, reps and rest and estimates the time the exercise takes.
func prescribe(se ScoredExercise) PlannedExercise {
	ex := se.Exercise
	sets := orDefault(ex.Sets, defaultSets)
	rest := orDefault(ex.RestTime, defaultRestSeconds)
	planned := PlannedExercise{
		ExerciseID:       ex.ID,
		Name:             ex.Name,
		Sets:             sets,
		Reps:             ex.Reps,
		DurationSeconds:  ex.Duration,
		RestSeconds:      rest,
		EstimatedSeconds: 0,
		Score:            se.Score,
	}
	if ex.Duration > 0 {
		planned.EstimatedSeconds = ex.Duration + rest*sets
		return planned
	}
	planned.Reps = orDefault(ex.Reps, defaultReps)
	planned.EstimatedSeconds = planned.Reps*secondsPerRep*sets + rest*sets
	return planned
}

// orDefault returns v when positive, else fallback.
func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// BuildWorkoutPlan runs filter, rank and assembly for p over the exercise catalog.
// Identity and timestamps are left to the caller.
func BuildWorkoutPlan(p FitnessProfile, catalog []ExerciseRecord) WorkoutPlan {
	candidates, relaxed := FilterExercises(catalog, p)
	plan := WorkoutPlan{ //nolint:exhaustruct // identity set by the caller.
		UserID:        p.UserID,
		Goal:          p.PrimaryGoal(),
		FitnessLevel:  p.FitnessLevel,
		Schedule:      AssembleWeek(Rank(candidates, p), p),
		RelaxedFilter: relaxed,
	}
	plan.Reasoning = workoutReasoning(p, plan)
	return plan
}
