package fitness_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
	"github.com/myrjola/fitplanner/internal/ptr"
)

func TestParseEnums(t *testing.T) {
	if got, err := fitness.ParseGoal(" Weight_Loss "); err != nil || got != fitness.GoalWeightLoss {
		t.Errorf("ParseGoal() = %q, %v", got, err)
	}
	if _, err := fitness.ParseGoal("toning"); !errors.Is(err, fitness.ErrInvalidEnum) {
		t.Errorf("ParseGoal(toning) error = %v, want ErrInvalidEnum", err)
	}
	if got, err := fitness.ParseDay("sunday"); err != nil || got != fitness.Sunday {
		t.Errorf("ParseDay() = %q, %v", got, err)
	}
	if _, err := fitness.ParseActivityLevel("couch"); !errors.Is(err, fitness.ErrInvalidEnum) {
		t.Errorf("ParseActivityLevel(couch) error = %v, want ErrInvalidEnum", err)
	}
	if _, err := fitness.ParseDietaryTag("paleo"); !errors.Is(err, fitness.ErrInvalidEnum) {
		t.Errorf("ParseDietaryTag(paleo) error = %v, want ErrInvalidEnum", err)
	}
}

func TestUnmarshalRejectsUnknownEnum(t *testing.T) {
	var p fitness.FitnessProfile
	err := json.Unmarshal([]byte(`{"goals":["weight_loss","toning"],"fitnessLevel":"beginner"}`), &p)
	if err == nil {
		t.Fatal("expected error for unknown goal")
	}
	if err = json.Unmarshal([]byte(`{"goals":["muscle_gain"],"fitnessLevel":"advanced","activityLevel":""}`),
		&p); err != nil {
		t.Fatalf("unmarshal valid profile: %v", err)
	}
	if diff := cmp.Diff([]fitness.Goal{fitness.GoalMuscleGain}, p.Goals); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}
}

func TestActivityFactor(t *testing.T) {
	tests := []struct {
		level fitness.ActivityLevel
		want  float64
	}{
		{fitness.ActivitySedentary, 1.2},
		{fitness.ActivityLight, 1.375},
		{fitness.ActivityModerate, 1.55},
		{fitness.ActivityActive, 1.725},
		{fitness.ActivityVeryActive, 1.9},
		{"", 1.55},
	}
	for _, tt := range tests {
		if got := tt.level.Factor(); got != tt.want {
			t.Errorf("%q.Factor() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestPreferenceOverrides_Apply(t *testing.T) {
	stored := beginnerProfile(fitness.GoalWeightLoss)
	stored.Preferences.RestDays = []fitness.Day{fitness.Sunday}
	stored.Allergens = []string{"peanuts"}

	got := fitness.PreferenceOverrides{ //nolint:exhaustruct // only overriding some fields.
		Goals:            []fitness.Goal{fitness.GoalMuscleGain},
		WorkoutFrequency: ptr.Ref(5),
		WorkoutDuration:  ptr.Ref(60),
		RestDays:         []fitness.Day{},
	}.Apply(stored)

	want := stored
	want.Goals = []fitness.Goal{fitness.GoalMuscleGain}
	want.WorkoutFrequency = 5
	want.Preferences.WorkoutDuration = 60
	want.Preferences.RestDays = []fitness.Day{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]fitness.Day{fitness.Sunday}, stored.Preferences.RestDays); diff != "" {
		t.Errorf("stored profile was modified (-want +got):\n%s", diff)
	}
}

func TestInferGoals(t *testing.T) {
	tests := []struct {
		category string
		want     []fitness.Goal
	}{
		{"cardio", []fitness.Goal{fitness.GoalWeightLoss, fitness.GoalEndurance}},
		{"HIIT", []fitness.Goal{fitness.GoalWeightLoss, fitness.GoalEndurance}},
		{"strength", []fitness.Goal{fitness.GoalMuscleGain, fitness.GoalStrength}},
		{"yoga", []fitness.Goal{fitness.GoalFlexibility}},
		{"core", nil},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, fitness.InferGoals(tt.category)); diff != "" {
				t.Errorf("InferGoals() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
