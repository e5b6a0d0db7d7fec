package fitness_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplanner/internal/fitness"
)

type dayLabel struct {
	Day   fitness.Day
	Kind  fitness.DayKind
	Split fitness.Split
}

func labels(week [7]fitness.DaySchedule) []dayLabel {
	out := make([]dayLabel, len(week))
	for i, d := range week {
		out[i] = dayLabel{Day: d.Day, Kind: d.Kind, Split: d.Split}
	}
	return out
}

func TestAssembleWeek_Labels(t *testing.T) {
	const (
		rest    = fitness.DayKindRest
		workout = fitness.DayKindWorkout
	)
	tests := []struct {
		name      string
		frequency int
		restDays  []fitness.Day
		want      []dayLabel
	}{
		{
			name:      "four days with sunday rest",
			frequency: 4,
			restDays:  []fitness.Day{fitness.Sunday},
			want: []dayLabel{
				{fitness.Monday, workout, fitness.SplitPush},
				{fitness.Tuesday, workout, fitness.SplitPull},
				{fitness.Wednesday, workout, fitness.SplitLegs},
				{fitness.Thursday, workout, fitness.SplitShouldersCore},
				{fitness.Friday, rest, ""},
				{fitness.Saturday, rest, ""},
				{fitness.Sunday, rest, ""},
			},
		},
		{
			name:      "seven sessions keep the default sunday rest and wrap the rotation",
			frequency: 7,
			restDays:  nil,
			want: []dayLabel{
				{fitness.Monday, workout, fitness.SplitPush},
				{fitness.Tuesday, workout, fitness.SplitPull},
				{fitness.Wednesday, workout, fitness.SplitLegs},
				{fitness.Thursday, workout, fitness.SplitShouldersCore},
				{fitness.Friday, workout, fitness.SplitFullBody},
				{fitness.Saturday, workout, fitness.SplitPush},
				{fitness.Sunday, rest, ""},
			},
		},
		{
			name:      "rest days in the middle of the week",
			frequency: 3,
			restDays:  []fitness.Day{fitness.Tuesday, fitness.Wednesday},
			want: []dayLabel{
				{fitness.Monday, workout, fitness.SplitPush},
				{fitness.Tuesday, rest, ""},
				{fitness.Wednesday, rest, ""},
				{fitness.Thursday, workout, fitness.SplitPull},
				{fitness.Friday, workout, fitness.SplitLegs},
				{fitness.Saturday, rest, ""},
				{fitness.Sunday, rest, ""},
			},
		},
		{
			name:      "explicit empty rest days allow sunday workouts",
			frequency: 7,
			restDays:  []fitness.Day{},
			want: []dayLabel{
				{fitness.Monday, workout, fitness.SplitPush},
				{fitness.Tuesday, workout, fitness.SplitPull},
				{fitness.Wednesday, workout, fitness.SplitLegs},
				{fitness.Thursday, workout, fitness.SplitShouldersCore},
				{fitness.Friday, workout, fitness.SplitFullBody},
				{fitness.Saturday, workout, fitness.SplitPush},
				{fitness.Sunday, workout, fitness.SplitPull},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := beginnerProfile(fitness.GoalWeightLoss)
			p.WorkoutFrequency = tt.frequency
			p.Preferences.RestDays = tt.restDays
			week := fitness.AssembleWeek(nil, p)
			if diff := cmp.Diff(tt.want, labels(week)); diff != "" {
				t.Errorf("AssembleWeek() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssembleWeek_FourWorkoutDays(t *testing.T) {
	p := beginnerProfile(fitness.GoalWeightLoss)
	p.WorkoutFrequency = 4
	p.Preferences.RestDays = []fitness.Day{fitness.Sunday}
	week := fitness.AssembleWeek(fitness.Rank(bodyweightCatalog(), p), p)

	counts := map[fitness.DayKind]int{}
	for _, d := range week {
		counts[d.Kind]++
	}
	if counts[fitness.DayKindWorkout] != 4 || counts[fitness.DayKindRest] != 3 {
		t.Errorf("got %d workout and %d rest days, want 4 and 3",
			counts[fitness.DayKindWorkout], counts[fitness.DayKindRest])
	}
	if week[6].Day != fitness.Sunday || week[6].Kind != fitness.DayKindRest {
		t.Errorf("sunday = %+v, want rest", week[6])
	}
}

func TestAssembleWeek_DayContents(t *testing.T) {
	wl := []fitness.Goal{fitness.GoalWeightLoss}
	push := func(id string) fitness.ExerciseRecord {
		return exercise(id, fitness.LevelBeginner, []string{"Chest"}, nil, wl)
	}
	legs := func(id string) fitness.ExerciseRecord {
		return exercise(id, fitness.LevelBeginner, []string{"glutes"}, nil, wl)
	}

	t.Run("split matches when five or more", func(t *testing.T) {
		p := beginnerProfile(fitness.GoalWeightLoss)
		p.WorkoutFrequency = 1
		catalog := []fitness.ExerciseRecord{legs("l1"), push("p1"), push("p2"), push("p3"), push("p4"), push("p5")}
		day := fitness.AssembleWeek(fitness.Rank(catalog, p), p)[0]
		if day.UsedFallback {
			t.Error("expected split matches, got fallback")
		}
		for _, ex := range day.Exercises {
			if ex.ExerciseID == "l1" {
				t.Error("legs exercise placed on push day")
			}
		}
		// 45 minutes allows 7 exercises, each 3x10 with 60 s rest is 270 s.
		if len(day.Exercises) != 5 {
			t.Errorf("got %d exercises, want 5", len(day.Exercises))
		}
		if day.EstimatedDurationSeconds != 5*270 {
			t.Errorf("estimated duration = %d, want %d", day.EstimatedDurationSeconds, 5*270)
		}
		// 6 kcal/min over 22.5 minutes.
		if day.EstimatedCalories != 135 {
			t.Errorf("estimated calories = %d, want 135", day.EstimatedCalories)
		}
	})

	t.Run("fallback to full list when fewer than five", func(t *testing.T) {
		p := beginnerProfile(fitness.GoalWeightLoss)
		p.WorkoutFrequency = 1
		catalog := []fitness.ExerciseRecord{legs("l1"), push("p1"), legs("l2")}
		day := fitness.AssembleWeek(fitness.Rank(catalog, p), p)[0]
		if !day.UsedFallback {
			t.Error("expected fallback")
		}
		got := make([]string, len(day.Exercises))
		for i, ex := range day.Exercises {
			got[i] = ex.ExerciseID
		}
		if diff := cmp.Diff([]string{"l1", "p1", "l2"}, got); diff != "" {
			t.Errorf("exercises mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("time budget and exercise cap", func(t *testing.T) {
		p := beginnerProfile(fitness.GoalWeightLoss)
		p.WorkoutFrequency = 1
		p.Preferences.WorkoutDuration = 12
		long := push("long")
		long.Duration = 600
		catalog := []fitness.ExerciseRecord{long, push("p1"), push("p2"), push("p3"), push("p4")}
		day := fitness.AssembleWeek(fitness.Rank(catalog, p), p)[0]
		got := make([]string, len(day.Exercises))
		for i, ex := range day.Exercises {
			got[i] = ex.ExerciseID
		}
		// 12 minutes is a 720 s budget and a cap of two exercises. long needs 600+180 s and is skipped.
		if diff := cmp.Diff([]string{"p1", "p2"}, got); diff != "" {
			t.Errorf("exercises mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty catalog needs data", func(t *testing.T) {
		p := beginnerProfile(fitness.GoalWeightLoss)
		week := fitness.AssembleWeek(nil, p)
		for _, d := range week {
			if d.Kind == fitness.DayKindWorkout && !d.NeedsData {
				t.Errorf("%s: expected NeedsData on empty workout day", d.Day)
			}
			if d.Kind == fitness.DayKindRest && d.NeedsData {
				t.Errorf("%s: rest day flagged NeedsData", d.Day)
			}
		}
	})
}

func TestBuildWorkoutPlan_BeginnerWeightLoss(t *testing.T) {
	p := beginnerProfile(fitness.GoalWeightLoss)
	catalog := bodyweightCatalog()
	plan := fitness.BuildWorkoutPlan(p, catalog)

	if got := plan.WorkoutDays(); got != 3 {
		t.Fatalf("workout days = %d, want 3", got)
	}
	byID := map[string]fitness.ExerciseRecord{}
	for _, ex := range catalog {
		byID[ex.ID] = ex
	}
	for _, day := range plan.Schedule {
		if day.Kind != fitness.DayKindWorkout {
			continue
		}
		if len(day.Exercises) == 0 {
			t.Errorf("%s has no exercises", day.Day)
		}
		for _, planned := range day.Exercises {
			if req := fitness.RequiredEquipment(byID[planned.ExerciseID]); len(req) > 0 {
				t.Errorf("%s: %s requires %v", day.Day, planned.ExerciseID, req)
			}
		}
	}
	if plan.RelaxedFilter {
		t.Error("did not expect the relaxed filter")
	}
	if plan.Goal != fitness.GoalWeightLoss {
		t.Errorf("goal = %q, want weight_loss", plan.Goal)
	}
	if plan.Reasoning == "" {
		t.Error("expected reasoning")
	}
}
