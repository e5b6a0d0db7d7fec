package fitness_test

import (
	"github.com/myrjola/fitplanner/internal/fitness"
)

// exercise builds a catalog record with the fields the engine looks at. Use the modifiers for the rest.
func exercise(
	id string,
	difficulty fitness.FitnessLevel,
	primary []string,
	equipment []string,
	goals []fitness.Goal,
	mods ...func(*fitness.ExerciseRecord),
) fitness.ExerciseRecord {
	ex := fitness.ExerciseRecord{ //nolint:exhaustruct // test fixture.
		ID:                id,
		Name:              "Exercise " + id,
		Category:          "strength",
		MuscleGroups:      fitness.MuscleGroups{Primary: primary, Secondary: nil},
		Equipment:         equipment,
		Difficulty:        difficulty,
		CaloriesPerMinute: 6,
		Goals:             goals,
	}
	for _, mod := range mods {
		mod(&ex)
	}
	return ex
}

func ids(exercises []fitness.ExerciseRecord) []string {
	out := make([]string, len(exercises))
	for i, ex := range exercises {
		out[i] = ex.ID
	}
	return out
}

func beginnerProfile(goals ...fitness.Goal) fitness.FitnessProfile {
	return fitness.FitnessProfile{ //nolint:exhaustruct // test fixture.
		UserID:             "user-1",
		Goals:              goals,
		FitnessLevel:       fitness.LevelBeginner,
		Age:                25,
		Gender:             fitness.GenderMale,
		HeightCm:           175,
		WeightKg:           70,
		ActivityLevel:      fitness.ActivityModerate,
		WorkoutFrequency:   3,
		AvailableEquipment: []string{"none"},
	}
}

// bodyweightCatalog has at least five beginner bodyweight weight loss exercises per split and some distractors.
func bodyweightCatalog() []fitness.ExerciseRecord {
	wl := []fitness.Goal{fitness.GoalWeightLoss}
	none := []string{"none"}
	return []fitness.ExerciseRecord{
		exercise("push-up", fitness.LevelBeginner, []string{"chest"}, none, wl),
		exercise("squat", fitness.LevelBeginner, []string{"quadriceps", "glutes"}, []string{"bodyweight"}, wl),
		exercise("plank", fitness.LevelBeginner, []string{"core"}, none, wl, func(ex *fitness.ExerciseRecord) {
			ex.Duration = 45
		}),
		exercise("jumping-jacks", fitness.LevelBeginner, []string{"calves", "shoulders"}, none, wl),
		exercise("superman", fitness.LevelBeginner, []string{"back"}, nil, wl),
		exercise("glute-bridge", fitness.LevelBeginner, []string{"glutes"}, none, wl),
		exercise("bench-press", fitness.LevelIntermediate, []string{"chest"}, []string{"barbell"}, wl),
		exercise("dumbbell-row", fitness.LevelBeginner, []string{"back"}, []string{"dumbbells"}, wl),
		exercise("muscle-up", fitness.LevelAdvanced, []string{"back", "chest"}, []string{"pull-up bar"}, nil),
	}
}
