package fitness

import (
	"fmt"
	"strings"
)

func humanize[T ~string](v T) string {
	return strings.ReplaceAll(string(v), "_", " ")
}

func workoutReasoning(p FitnessProfile, plan WorkoutPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This %s plan focuses on %s with %d workout days per week of about %d minutes each.",
		humanize(p.FitnessLevel), humanize(plan.Goal), plan.WorkoutDays(), workoutMinutes(p))

	var splits []string
	fallbackDays := 0
	emptyDays := 0
	for _, d := range plan.Schedule {
		if d.Kind != DayKindWorkout {
			continue
		}
		splits = append(splits, humanize(d.Day)+" "+humanize(d.Split))
		if d.UsedFallback {
			fallbackDays++
		}
		if d.NeedsData {
			emptyDays++
		}
	}
	if len(splits) > 0 {
		fmt.Fprintf(&b, " Training days: %s.", strings.Join(splits, ", "))
	}
	if plan.RelaxedFilter {
		b.WriteString(" No exercise matched all of your equipment, health and goal constraints," +
			" so exercises were picked by difficulty only.")
	}
	if fallbackDays > 0 {
		fmt.Fprintf(&b, " %d day(s) had too few exercises for their muscle focus and use the full candidate list.",
			fallbackDays)
	}
	if emptyDays > 0 {
		fmt.Fprintf(&b, " %d day(s) have no exercises yet because the catalog has no suitable entries.", emptyDays)
	}
	return b.String()
}

func nutritionReasoning(p FitnessProfile, plan NutritionPlan) string {
	var b strings.Builder
	activity := p.ActivityLevel
	if activity == "" {
		activity = ActivityModerate
	}
	fmt.Fprintf(&b, "Your BMR is %.0f kcal and with a %s activity level your TDEE is %d kcal.",
		plan.BMR, humanize(activity), plan.TDEE)
	switch {
	case plan.CalorieAdjustment < 0:
		fmt.Fprintf(&b, " A %d kcal deficit supports weight loss, giving %d kcal per day.",
			-plan.CalorieAdjustment, plan.DailyCalories)
	case plan.CalorieAdjustment > 0:
		fmt.Fprintf(&b, " A %d kcal surplus supports muscle gain, giving %d kcal per day.",
			plan.CalorieAdjustment, plan.DailyCalories)
	default:
		fmt.Fprintf(&b, " Your daily target stays at maintenance, %d kcal.", plan.DailyCalories)
	}
	fmt.Fprintf(&b, " Macros are split %d/%d/%d percent protein/carbs/fats: %dg protein, %dg carbs and %dg fats.",
		plan.Macros.ProteinPercent, plan.Macros.CarbsPercent, plan.Macros.FatsPercent,
		plan.Macros.ProteinGrams, plan.Macros.CarbsGrams, plan.Macros.FatsGrams)
	fmt.Fprintf(&b, " Aim for %d ml of water per day.", plan.HydrationMl)
	for _, m := range plan.Meals {
		if m.NeedsData {
			b.WriteString(" Some meals have no food suggestions because no catalog food fits your preferences.")
			break
		}
	}
	return b.String()
}
