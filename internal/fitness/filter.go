package fitness

import (
	"slices"
	"strings"
)

// ExerciseFilters are request level constraints applied to the catalog before the profile constraints.
// Zero values mean no constraint.
type ExerciseFilters struct {
	Category    string       `json:"category,omitempty"`
	MuscleGroup string       `json:"muscleGroup,omitempty"`
	Difficulty  FitnessLevel `json:"difficulty,omitempty"`
	Limit       int          `json:"limit,omitempty" validate:"gte=0,lte=100"`
}

const defaultRecommendationLimit = 20

func (f ExerciseFilters) limit() int {
	if f.Limit <= 0 {
		return defaultRecommendationLimit
	}
	return f.Limit
}

func (f ExerciseFilters) matches(ex ExerciseRecord) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, ex.Category) {
		return false
	}
	if f.Difficulty != "" && f.Difficulty != ex.Difficulty {
		return false
	}
	if f.MuscleGroup != "" &&
		!containsFold(ex.MuscleGroups.Primary, f.MuscleGroup) &&
		!containsFold(ex.MuscleGroups.Secondary, f.MuscleGroup) {
		return false
	}
	return true
}

// Apply returns the exercises matching every set filter, in catalog order.
func (f ExerciseFilters) Apply(catalog []ExerciseRecord) []ExerciseRecord {
	out := make([]ExerciseRecord, 0, len(catalog))
	for _, ex := range catalog {
		if f.matches(ex) {
			out = append(out, ex)
		}
	}
	return out
}

// FilterExercises reduces catalog to the exercises compatible with p, preserving catalog order.
//
// When no exercise passes every constraint the difficulty constraint alone is applied and relaxed is true.
func FilterExercises(catalog []ExerciseRecord, p FitnessProfile) (candidates []ExerciseRecord, relaxed bool) {
	candidates = make([]ExerciseRecord, 0, len(catalog))
	for _, ex := range catalog {
		if compatibleDifficulty(ex, p) &&
			hasRequiredEquipment(ex, p) &&
			!contraindicated(ex, p) &&
			alignedWithGoals(ex, p) {
			candidates = append(candidates, ex)
		}
	}
	if len(candidates) > 0 || len(catalog) == 0 {
		return candidates, false
	}

	for _, ex := range catalog {
		if compatibleDifficulty(ex, p) {
			candidates = append(candidates, ex)
		}
	}
	return candidates, true
}

func compatibleDifficulty(ex ExerciseRecord, p FitnessProfile) bool {
	return levelDistance(ex.Difficulty, p.FitnessLevel) <= 1
}

func levelDistance(a, b FitnessLevel) int {
	d := a.Ordinal() - b.Ordinal()
	if d < 0 {
		return -d
	}
	return d
}

// RequiredEquipment is the equipment an exercise needs, leaving out the none and bodyweight markers.
func RequiredEquipment(ex ExerciseRecord) []string {
	var required []string
	for _, e := range ex.Equipment {
		switch strings.ToLower(strings.TrimSpace(e)) {
		case "", "none", "bodyweight":
			continue
		}
		required = append(required, e)
	}
	return required
}

func hasRequiredEquipment(ex ExerciseRecord, p FitnessProfile) bool {
	required := RequiredEquipment(ex)
	if len(required) == 0 {
		return true
	}
	return intersectsFold(required, p.AvailableEquipment)
}

func contraindicated(ex ExerciseRecord, p FitnessProfile) bool {
	return intersectsFold(ex.Contraindications, p.HealthConditions)
}

func alignedWithGoals(ex ExerciseRecord, p FitnessProfile) bool {
	if len(ex.Goals) == 0 {
		return true
	}
	for _, g := range ex.Goals {
		if slices.Contains(p.Goals, g) {
			return true
		}
	}
	return false
}

// FilterFoods keeps the foods satisfying every dietary preference of p and none of its allergens.
func FilterFoods(catalog []FoodRecord, p FitnessProfile) []FoodRecord {
	out := make([]FoodRecord, 0, len(catalog))
	for _, food := range catalog {
		if satisfiesDiet(food.DietaryInfo, p.DietaryPreferences) &&
			!intersectsFold(food.DietaryInfo.Allergens, p.Allergens) {
			out = append(out, food)
		}
	}
	return out
}

func satisfiesDiet(info DietaryInfo, tags []DietaryTag) bool {
	for _, tag := range tags {
		if !tag.SatisfiedBy(info) {
			return false
		}
	}
	return true
}

// SatisfiedBy reports whether a food with the given dietary info meets the tag.
func (d DietaryTag) SatisfiedBy(info DietaryInfo) bool {
	switch d {
	case DietVegetarian:
		return info.IsVegetarian
	case DietVegan:
		return info.IsVegan
	case DietGlutenFree:
		return info.IsGlutenFree
	case DietKeto:
		return info.IsKeto
	}
	return false
}

func containsFold(values []string, target string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target))
	})
}

func intersectsFold(a, b []string) bool {
	for _, v := range a {
		if containsFold(b, v) {
			return true
		}
	}
	return false
}
