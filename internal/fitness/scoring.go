package fitness

import (
	"cmp"
	"math"
	"slices"

	"github.com/myrjola/fitplanner/internal/ptr"
)

const (
	goalWeight        = 40.0
	difficultyWeight  = 20.0
	muscleWeight      = 20.0
	popularityWeight  = 20.0
	defaultPopularity = 50.0
	// Muscle coverage saturates at four primary muscle equivalents.
	muscleSaturation = 4.0
)

// Score rates how well ex suits p on a 0 to 100 scale, rounded to two decimals.
func Score(ex ExerciseRecord, p FitnessProfile) float64 {
	total := goalWeight*goalOverlap(ex, p) +
		difficultyWeight*difficultyMatch(ex.Difficulty, p.FitnessLevel) +
		muscleWeight*muscleCoverage(ex) +
		popularityWeight*popularity(ex)
	return math.Round(total*100) / 100 //nolint:mnd // two decimals.
}

// goalOverlap is the share of the distinct profile goals the exercise is tagged with.
func goalOverlap(ex ExerciseRecord, p FitnessProfile) float64 {
	goals := slices.Compact(slices.Sorted(slices.Values(p.Goals)))
	matched := 0
	for _, g := range goals {
		if slices.Contains(ex.Goals, g) {
			matched++
		}
	}
	return float64(matched) / float64(max(len(goals), 1))
}

func difficultyMatch(exercise, profile FitnessLevel) float64 {
	switch levelDistance(exercise, profile) {
	case 0:
		return 1
	case 1:
		return 0.7 //nolint:mnd // adjacent level.
	}
	return 0.3 //nolint:mnd // far apart.
}

func muscleCoverage(ex ExerciseRecord) float64 {
	n := float64(len(ex.MuscleGroups.Primary)) + 0.5*float64(len(ex.MuscleGroups.Secondary)) //nolint:mnd // half weight.
	return math.Min(n/muscleSaturation, 1)
}

func popularity(ex ExerciseRecord) float64 {
	pop := ptr.Deref(ex.PopularityScore, defaultPopularity)
	eff := ptr.Deref(ex.EffectivenessScore, defaultPopularity)
	return (0.5*pop + 0.5*eff) / 100 //nolint:mnd // average on a 0-100 scale.
}

// Rank scores the candidates and orders them by descending score. Ties keep candidate order.
func Rank(candidates []ExerciseRecord, p FitnessProfile) []ScoredExercise {
	ranked := make([]ScoredExercise, len(candidates))
	for i, ex := range candidates {
		ranked[i] = ScoredExercise{Exercise: ex, Score: Score(ex, p)}
	}
	slices.SortStableFunc(ranked, func(a, b ScoredExercise) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}
