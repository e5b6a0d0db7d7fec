package fitness_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplanner/internal/fitness"
	"github.com/myrjola/fitplanner/internal/ptr"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		ex      fitness.ExerciseRecord
		profile fitness.FitnessProfile
		want    float64
	}{
		{
			name: "half goal overlap with default popularity",
			ex: exercise("a", fitness.LevelBeginner, []string{"chest", "triceps"}, nil,
				[]fitness.Goal{fitness.GoalWeightLoss}, func(ex *fitness.ExerciseRecord) {
					ex.MuscleGroups.Secondary = []string{"shoulders"}
				}),
			profile: beginnerProfile(fitness.GoalWeightLoss, fitness.GoalEndurance),
			// 40*0.5 + 20*1 + 20*(2.5/4) + 20*0.5
			want: 62.5,
		},
		{
			name: "adjacent difficulty with explicit popularity",
			ex: exercise("b", fitness.LevelIntermediate, []string{"quadriceps"}, nil,
				[]fitness.Goal{fitness.GoalStrength}, func(ex *fitness.ExerciseRecord) {
					ex.PopularityScore = ptr.Ref(90.0)
					ex.EffectivenessScore = ptr.Ref(85.0)
				}),
			profile: beginnerProfile(fitness.GoalStrength),
			// 40*1 + 20*0.7 + 20*0.25 + 20*0.875
			want: 76.5,
		},
		{
			name:    "far difficulty, no goals, muscle coverage caps at one",
			ex:      exercise("c", fitness.LevelAdvanced, []string{"a", "b", "c", "d", "e"}, nil, nil),
			profile: beginnerProfile(),
			// 0 + 20*0.3 + 20*1 + 20*0.5
			want: 36,
		},
		{
			name: "duplicate goal tags count once",
			ex: exercise("d", fitness.LevelBeginner, nil, nil,
				[]fitness.Goal{fitness.GoalWeightLoss, fitness.GoalWeightLoss}),
			profile: beginnerProfile(fitness.GoalWeightLoss),
			// 40 + 20 + 0 + 10
			want: 70,
		},
		{
			name: "duplicate profile goals count once",
			ex: exercise("d", fitness.LevelBeginner, nil, nil, []fitness.Goal{fitness.GoalWeightLoss}),
			profile: beginnerProfile(fitness.GoalWeightLoss, fitness.GoalWeightLoss),
			// 40 + 20 + 0 + 10, same as a single weight_loss goal
			want: 70,
		},
		{
			name: "rounds to two decimals",
			ex: exercise("e", fitness.LevelBeginner, []string{"core"}, nil, []fitness.Goal{fitness.GoalEndurance},
				func(ex *fitness.ExerciseRecord) { ex.PopularityScore = ptr.Ref(33.333) }),
			profile: beginnerProfile(fitness.GoalEndurance, fitness.GoalFlexibility, fitness.GoalStrength),
			// 40/3 + 20 + 5 + 20*(0.5*33.333+25)/100 = 13.333 + 20 + 5 + 8.3333
			want: 46.67,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitness.Score(tt.ex, tt.profile)
			if got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if again := fitness.Score(tt.ex, tt.profile); again != got {
				t.Errorf("Score() not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestRank(t *testing.T) {
	p := beginnerProfile(fitness.GoalWeightLoss)
	wl := []fitness.Goal{fitness.GoalWeightLoss}
	candidates := []fitness.ExerciseRecord{
		exercise("tie-1", fitness.LevelBeginner, []string{"chest"}, nil, nil),
		exercise("best", fitness.LevelBeginner, []string{"chest", "back", "core", "glutes"}, nil, wl),
		exercise("tie-2", fitness.LevelBeginner, []string{"back"}, nil, nil),
		exercise("worst", fitness.LevelIntermediate, nil, nil, nil),
		exercise("tie-3", fitness.LevelBeginner, []string{"core"}, nil, nil),
	}
	ranked := fitness.Rank(candidates, p)
	got := make([]string, len(ranked))
	for i, se := range ranked {
		got[i] = se.Exercise.ID
		if i > 0 && se.Score > ranked[i-1].Score {
			t.Errorf("rank %d score %v exceeds previous %v", i, se.Score, ranked[i-1].Score)
		}
	}
	if diff := cmp.Diff([]string{"best", "tie-1", "tie-2", "tie-3", "worst"}, got); diff != "" {
		t.Errorf("Rank() order mismatch (-want +got):\n%s", diff)
	}
}
