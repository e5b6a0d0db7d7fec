package fitness

import (
	"math"
	"slices"
)

const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9

	weightLossAdjustment = -500
	muscleGainAdjustment = 300

	hydrationMlPerKg     = 30
	activeHydrationBonus = 500
	foodsPerMeal         = 3
)

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal.
func BMR(p FitnessProfile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) //nolint:mnd // Mifflin-St Jeor.
	if p.Gender == GenderMale {
		return base + 5 //nolint:mnd // see above.
	}
	return base - 161 //nolint:mnd // see above.
}

// TDEE is the BMR scaled by the activity factor, rounded to whole kcal.
func TDEE(p FitnessProfile) int {
	return int(math.Round(BMR(p) * p.ActivityLevel.Factor()))
}

// CalorieAdjustment is the daily surplus or deficit for the goals. Weight loss takes precedence over muscle gain.
func CalorieAdjustment(goals []Goal) int {
	switch {
	case slices.Contains(goals, GoalWeightLoss):
		return weightLossAdjustment
	case slices.Contains(goals, GoalMuscleGain):
		return muscleGainAdjustment
	}
	return 0
}

// MacroSplit returns the protein, carbs and fats percentages. Muscle gain takes precedence over weight loss.
func MacroSplit(goals []Goal) (protein, carbs, fats int) {
	switch {
	case slices.Contains(goals, GoalMuscleGain):
		return 30, 45, 25 //nolint:mnd // split table.
	case slices.Contains(goals, GoalWeightLoss):
		return 40, 30, 30 //nolint:mnd // split table.
	}
	return 25, 50, 25 //nolint:mnd // split table.
}

// MacroGrams converts the calorie target into gram targets for the goals.
func MacroGrams(calories int, goals []Goal) MacroTargets {
	protein, carbs, fats := MacroSplit(goals)
	grams := func(pct, perGram int) int {
		return int(math.Round(float64(calories) * float64(pct) / 100 / float64(perGram))) //nolint:mnd // percent.
	}
	return MacroTargets{
		ProteinGrams:   grams(protein, caloriesPerGramProtein),
		CarbsGrams:     grams(carbs, caloriesPerGramCarbs),
		FatsGrams:      grams(fats, caloriesPerGramFat),
		ProteinPercent: protein,
		CarbsPercent:   carbs,
		FatsPercent:    fats,
	}
}

// mealShares is the share of the daily calories each meal gets, in serving order.
var mealShares = [...]struct { //nolint:gochecknoglobals // fixed distribution.
	meal  MealType
	share float64
}{
	{MealBreakfast, 0.25},
	{MealLunch, 0.35},
	{MealDinner, 0.30},
	{MealSnack, 0.10},
}

// AssembleMeals splits the daily calories over the four meals and picks up to three foods tagged with each meal
// type in catalog order. A meal without foods is flagged NeedsData.
func AssembleMeals(foods []FoodRecord, dailyCalories int) []MealPlan {
	meals := make([]MealPlan, 0, len(mealShares))
	for _, ms := range mealShares {
		var picked []FoodRecord
		for _, food := range foods {
			if len(picked) == foodsPerMeal {
				break
			}
			if slices.Contains(food.MealTypes, ms.meal) {
				picked = append(picked, food)
			}
		}
		meals = append(meals, MealPlan{
			Type:           ms.meal,
			TargetCalories: int(math.Round(float64(dailyCalories) * ms.share)),
			Foods:          picked,
			NeedsData:      len(picked) == 0,
		})
	}
	return meals
}

// HydrationMl is 30 ml per kg of body weight plus half a litre for active people.
func HydrationMl(p FitnessProfile) int {
	ml := p.WeightKg * hydrationMlPerKg
	if p.ActivityLevel == ActivityActive || p.ActivityLevel == ActivityVeryActive {
		ml += activeHydrationBonus
	}
	return int(math.Round(ml))
}

// BuildNutritionPlan computes the targets and meal skeleton for p from the already loaded food catalog.
// Identity and timestamps are left to the caller.
func BuildNutritionPlan(p FitnessProfile, catalog []FoodRecord) NutritionPlan {
	var (
		bmr        = BMR(p)
		tdee       = TDEE(p)
		adjustment = CalorieAdjustment(p.Goals)
		daily      = tdee + adjustment
	)
	plan := NutritionPlan{ //nolint:exhaustruct // identity set by the caller.
		UserID:            p.UserID,
		BMR:               math.Round(bmr*100) / 100, //nolint:mnd // two decimals.
		TDEE:              tdee,
		CalorieAdjustment: adjustment,
		DailyCalories:     daily,
		Macros:            MacroGrams(daily, p.Goals),
		Meals:             AssembleMeals(FilterFoods(catalog, p), daily),
		HydrationMl:       HydrationMl(p),
	}
	plan.Reasoning = nutritionReasoning(p, plan)
	return plan
}
