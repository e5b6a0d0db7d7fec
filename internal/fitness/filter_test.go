package fitness_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplanner/internal/fitness"
)

func TestFilterExercises(t *testing.T) {
	wl := []fitness.Goal{fitness.GoalWeightLoss}
	tests := []struct {
		name        string
		catalog     []fitness.ExerciseRecord
		profile     func(p *fitness.FitnessProfile)
		wantIDs     []string
		wantRelaxed bool
	}{
		{
			name: "difficulty within one level",
			catalog: []fitness.ExerciseRecord{
				exercise("easy", fitness.LevelBeginner, nil, nil, nil),
				exercise("medium", fitness.LevelIntermediate, nil, nil, nil),
				exercise("hard", fitness.LevelAdvanced, nil, nil, nil),
			},
			profile: func(*fitness.FitnessProfile) {},
			wantIDs: []string{"easy", "medium"},
		},
		{
			name: "equipment none and bodyweight need nothing",
			catalog: []fitness.ExerciseRecord{
				exercise("a", fitness.LevelBeginner, nil, []string{"none"}, nil),
				exercise("b", fitness.LevelBeginner, nil, []string{"Bodyweight"}, nil),
				exercise("c", fitness.LevelBeginner, nil, []string{"dumbbells"}, nil),
				exercise("d", fitness.LevelBeginner, nil, []string{"Kettlebell", "bodyweight"}, nil),
			},
			profile: func(p *fitness.FitnessProfile) { p.AvailableEquipment = []string{"kettlebell"} },
			wantIDs: []string{"a", "b", "d"},
		},
		{
			name: "health conditions exclude",
			catalog: []fitness.ExerciseRecord{
				exercise("lunge", fitness.LevelBeginner, nil, nil, nil, func(ex *fitness.ExerciseRecord) {
					ex.Contraindications = []string{"knee_injury"}
				}),
				exercise("bridge", fitness.LevelBeginner, nil, nil, nil),
			},
			profile: func(p *fitness.FitnessProfile) { p.HealthConditions = []string{"Knee_Injury"} },
			wantIDs: []string{"bridge"},
		},
		{
			name: "goal tags intersect or are absent",
			catalog: []fitness.ExerciseRecord{
				exercise("wl", fitness.LevelBeginner, nil, nil, wl),
				exercise("untagged", fitness.LevelBeginner, nil, nil, nil),
				exercise("mg", fitness.LevelBeginner, nil, nil, []fitness.Goal{fitness.GoalMuscleGain}),
			},
			profile: func(p *fitness.FitnessProfile) { p.Goals = wl },
			wantIDs: []string{"wl", "untagged"},
		},
		{
			name: "falls back to difficulty only when nothing passes",
			catalog: []fitness.ExerciseRecord{
				exercise("barbell", fitness.LevelBeginner, nil, []string{"barbell"}, nil),
				exercise("knee", fitness.LevelIntermediate, nil, nil, nil, func(ex *fitness.ExerciseRecord) {
					ex.Contraindications = []string{"knee_injury"}
				}),
				exercise("advanced", fitness.LevelAdvanced, nil, nil, nil),
			},
			profile: func(p *fitness.FitnessProfile) {
				p.HealthConditions = []string{"knee_injury"}
			},
			wantIDs:     []string{"barbell", "knee"},
			wantRelaxed: true,
		},
		{
			name:    "empty catalog is not relaxed",
			catalog: nil,
			profile: func(*fitness.FitnessProfile) {},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := beginnerProfile()
			tt.profile(&p)
			got, relaxed := fitness.FilterExercises(tt.catalog, p)
			if diff := cmp.Diff(tt.wantIDs, ids(got)); diff != "" {
				t.Errorf("FilterExercises() mismatch (-want +got):\n%s", diff)
			}
			if relaxed != tt.wantRelaxed {
				t.Errorf("relaxed = %v, want %v", relaxed, tt.wantRelaxed)
			}
		})
	}
}

func TestFilterExercises_Subset(t *testing.T) {
	catalog := bodyweightCatalog()
	profiles := []fitness.FitnessProfile{
		beginnerProfile(fitness.GoalWeightLoss),
		beginnerProfile(fitness.GoalMuscleGain),
		beginnerProfile(),
	}
	profiles[1].FitnessLevel = fitness.LevelAdvanced
	profiles[1].AvailableEquipment = []string{"barbell", "pull-up bar"}
	profiles[2].HealthConditions = []string{"everything"}

	for _, p := range profiles {
		got, _ := fitness.FilterExercises(catalog, p)
		for _, ex := range got {
			if !slices.ContainsFunc(catalog, func(c fitness.ExerciseRecord) bool { return c.ID == ex.ID }) {
				t.Errorf("FilterExercises() returned %q which is not in the catalog", ex.ID)
			}
		}
	}
}

func TestExerciseFilters_Apply(t *testing.T) {
	catalog := []fitness.ExerciseRecord{
		exercise("a", fitness.LevelBeginner, []string{"chest"}, nil, nil),
		exercise("b", fitness.LevelIntermediate, []string{"back"}, nil, nil, func(ex *fitness.ExerciseRecord) {
			ex.Category = "cardio"
			ex.MuscleGroups.Secondary = []string{"Chest"}
		}),
		exercise("c", fitness.LevelBeginner, []string{"quadriceps"}, nil, nil),
	}
	tests := []struct {
		name    string
		filters fitness.ExerciseFilters
		want    []string
	}{
		{name: "no filters", filters: fitness.ExerciseFilters{}, want: []string{"a", "b", "c"}},
		{name: "category", filters: fitness.ExerciseFilters{Category: "Cardio"}, want: []string{"b"}},
		{name: "muscle group in secondary", filters: fitness.ExerciseFilters{MuscleGroup: "chest"}, want: []string{"a", "b"}},
		{
			name:    "difficulty and muscle",
			filters: fitness.ExerciseFilters{Difficulty: fitness.LevelBeginner, MuscleGroup: "chest"},
			want:    []string{"a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(tt.filters.Apply(catalog))); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterFoods(t *testing.T) {
	foods := []fitness.FoodRecord{
		{ID: "steak", MealTypes: []fitness.MealType{fitness.MealDinner}, DietaryInfo: fitness.DietaryInfo{
			IsVegetarian: false, IsVegan: false, IsGlutenFree: true, IsKeto: true, Allergens: nil}},
		{ID: "tofu", MealTypes: []fitness.MealType{fitness.MealDinner}, DietaryInfo: fitness.DietaryInfo{
			IsVegetarian: true, IsVegan: true, IsGlutenFree: false, IsKeto: false, Allergens: []string{"soy"}}},
		{ID: "salad", MealTypes: []fitness.MealType{fitness.MealLunch}, DietaryInfo: fitness.DietaryInfo{
			IsVegetarian: true, IsVegan: true, IsGlutenFree: true, IsKeto: true, Allergens: nil}},
		{ID: "yogurt", MealTypes: []fitness.MealType{fitness.MealSnack}, DietaryInfo: fitness.DietaryInfo{
			IsVegetarian: true, IsVegan: false, IsGlutenFree: true, IsKeto: false, Allergens: []string{"dairy"}}},
	}
	tests := []struct {
		name      string
		diet      []fitness.DietaryTag
		allergens []string
		want      []string
	}{
		{name: "no preferences", want: []string{"steak", "tofu", "salad", "yogurt"}},
		{name: "vegan", diet: []fitness.DietaryTag{fitness.DietVegan}, want: []string{"tofu", "salad"}},
		{
			name: "vegetarian and gluten free",
			diet: []fitness.DietaryTag{fitness.DietVegetarian, fitness.DietGlutenFree},
			want: []string{"salad", "yogurt"},
		},
		{name: "allergens", allergens: []string{"SOY", "dairy"}, want: []string{"steak", "salad"}},
		{name: "keto", diet: []fitness.DietaryTag{fitness.DietKeto}, want: []string{"steak", "salad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := beginnerProfile()
			p.DietaryPreferences = tt.diet
			p.Allergens = tt.allergens
			got := fitness.FilterFoods(foods, p)
			gotIDs := make([]string, len(got))
			for i, f := range got {
				gotIDs[i] = f.ID
			}
			if diff := cmp.Diff(tt.want, gotIDs); diff != "" {
				t.Errorf("FilterFoods() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
