package fitness_test

import (
	"strings"
	"testing"

	"github.com/myrjola/fitplanner/internal/fitness"
)

func assertMentions(t *testing.T, reasoning string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(reasoning, w) {
			t.Errorf("reasoning %q does not mention %q", reasoning, w)
		}
	}
}

func TestNutritionReasoning(t *testing.T) {
	tests := []struct {
		name  string
		goals []fitness.Goal
		want  []string
	}{
		{
			name:  "weight loss",
			goals: []fitness.Goal{fitness.GoalWeightLoss},
			want: []string{
				"Your BMR is 1674 kcal", "TDEE is 2594 kcal", "500 kcal deficit", "2094 kcal per day",
				"40/30/30 percent", "2100 ml",
			},
		},
		{
			name:  "muscle gain",
			goals: []fitness.Goal{fitness.GoalMuscleGain},
			want:  []string{"300 kcal surplus", "2894 kcal per day", "30/45/25 percent"},
		},
		{
			name:  "maintenance",
			goals: nil,
			want:  []string{"stays at maintenance, 2594 kcal", "25/50/25 percent"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := fitness.BuildNutritionPlan(beginnerProfile(tt.goals...), nil)
			assertMentions(t, plan.Reasoning, tt.want...)
			assertMentions(t, plan.Reasoning, "no food suggestions")
		})
	}
}

func TestWorkoutReasoning(t *testing.T) {
	t.Run("full catalog", func(t *testing.T) {
		plan := fitness.BuildWorkoutPlan(beginnerProfile(fitness.GoalWeightLoss), bodyweightCatalog())
		assertMentions(t, plan.Reasoning,
			"This beginner plan focuses on weight loss with 3 workout days per week of about 45 minutes each.",
			"monday push", "tuesday pull", "wednesday legs")
		if strings.Contains(plan.Reasoning, "difficulty only") {
			t.Errorf("strict filter reported as relaxed: %q", plan.Reasoning)
		}
	})

	t.Run("relaxed filter", func(t *testing.T) {
		catalog := []fitness.ExerciseRecord{
			exercise("bench-press", fitness.LevelBeginner, []string{"chest"}, []string{"barbell"}, nil),
		}
		plan := fitness.BuildWorkoutPlan(beginnerProfile(fitness.GoalWeightLoss), catalog)
		assertMentions(t, plan.Reasoning, "picked by difficulty only", "use the full candidate list")
	})

	t.Run("empty catalog", func(t *testing.T) {
		plan := fitness.BuildWorkoutPlan(beginnerProfile(), nil)
		assertMentions(t, plan.Reasoning, "general fitness", "3 day(s) have no exercises yet")
	})
}
