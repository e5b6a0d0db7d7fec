package fitness

import (
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
)

// ErrInvalidEnum is returned when a value does not belong to one of the closed enumerations below.
var ErrInvalidEnum = errors.NewSentinel("invalid enum value")

func parseEnum[T ~string](kind string, s string, valid []T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	for _, candidate := range valid {
		if v == candidate {
			return v, nil
		}
	}
	var zero T
	return zero, errors.Wrap(ErrInvalidEnum, "parse "+kind, slog.String("value", s))
}

func unmarshalEnum[T ~string](kind string, text []byte, valid []T, dst *T) error {
	v, err := parseEnum(kind, string(text), valid)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// Goal is a fitness goal. Exercises are tagged with the goals they serve.
type Goal string

const (
	GoalWeightLoss     Goal = "weight_loss"
	GoalMuscleGain     Goal = "muscle_gain"
	GoalEndurance      Goal = "endurance"
	GoalGeneralFitness Goal = "general_fitness"
	GoalStrength       Goal = "strength"
	GoalFlexibility    Goal = "flexibility"
)

// Goals lists every valid goal.
var Goals = []Goal{ //nolint:gochecknoglobals // closed enumeration.
	GoalWeightLoss, GoalMuscleGain, GoalEndurance, GoalGeneralFitness, GoalStrength, GoalFlexibility,
}

// ParseGoal returns ErrInvalidEnum for anything outside Goals.
func ParseGoal(s string) (Goal, error) { return parseEnum("goal", s, Goals) }

// UnmarshalText implements encoding.TextUnmarshaler with the same validation as ParseGoal.
func (g *Goal) UnmarshalText(text []byte) error { return unmarshalEnum("goal", text, Goals, g) }

// FitnessLevel doubles as the difficulty of an exercise.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

var FitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced} //nolint:gochecknoglobals // enum.

// ParseFitnessLevel returns ErrInvalidEnum for anything outside FitnessLevels.
func ParseFitnessLevel(s string) (FitnessLevel, error) { return parseEnum("fitness level", s, FitnessLevels) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *FitnessLevel) UnmarshalText(text []byte) error {
	return unmarshalEnum("fitness level", text, FitnessLevels, l)
}

// Ordinal maps beginner, intermediate and advanced to 1, 2 and 3.
func (l FitnessLevel) Ordinal() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2 //nolint:mnd // ordinal.
	case LevelAdvanced:
		return 3 //nolint:mnd // ordinal.
	}
	return 0
}

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var ActivityLevels = []ActivityLevel{ //nolint:gochecknoglobals // closed enumeration.
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive,
}

// ParseActivityLevel returns ErrInvalidEnum for anything outside ActivityLevels.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	return parseEnum("activity level", s, ActivityLevels)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ActivityLevel) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = ""
		return nil
	}
	return unmarshalEnum("activity level", text, ActivityLevels, a)
}

// Factor is the TDEE multiplier. An unset level counts as moderate.
func (a ActivityLevel) Factor() float64 {
	switch a {
	case ActivitySedentary:
		return 1.2 //nolint:mnd // Mifflin-St Jeor activity factors.
	case ActivityLight:
		return 1.375 //nolint:mnd // see above.
	case ActivityModerate:
		return 1.55 //nolint:mnd // see above.
	case ActivityActive:
		return 1.725 //nolint:mnd // see above.
	case ActivityVeryActive:
		return 1.9 //nolint:mnd // see above.
	}
	return 1.55 //nolint:mnd // moderate.
}

// Gender selects the BMR formula. GenderOther uses the female constant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther} //nolint:gochecknoglobals // closed enumeration.

// ParseGender returns ErrInvalidEnum for anything outside Genders.
func ParseGender(s string) (Gender, error) { return parseEnum("gender", s, Genders) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(text []byte) error { return unmarshalEnum("gender", text, Genders, g) }

// DietaryTag is a dietary preference. Every requested tag must hold for a food to be eligible.
type DietaryTag string

const (
	DietVegetarian DietaryTag = "vegetarian"
	DietVegan      DietaryTag = "vegan"
	DietGlutenFree DietaryTag = "gluten_free"
	DietKeto       DietaryTag = "keto"
)

var DietaryTags = []DietaryTag{DietVegetarian, DietVegan, DietGlutenFree, DietKeto} //nolint:gochecknoglobals // enum.

// ParseDietaryTag returns ErrInvalidEnum for anything outside DietaryTags.
func ParseDietaryTag(s string) (DietaryTag, error) { return parseEnum("dietary tag", s, DietaryTags) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DietaryTag) UnmarshalText(text []byte) error {
	return unmarshalEnum("dietary tag", text, DietaryTags, d)
}

// MealType names one of the four daily meals.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack} //nolint:gochecknoglobals // enum.

// ParseMealType returns ErrInvalidEnum for anything outside MealTypes.
func ParseMealType(s string) (MealType, error) { return parseEnum("meal type", s, MealTypes) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MealType) UnmarshalText(text []byte) error { return unmarshalEnum("meal type", text, MealTypes, m) }

// Day is a day of the week. Schedules always run Monday through Sunday.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Week is the schedule order.
var Week = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} //nolint:gochecknoglobals // enum.

// ParseDay accepts weekday names in any case.
func ParseDay(s string) (Day, error) { return parseEnum("day", s, Week[:]) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error { return unmarshalEnum("day", text, Week[:], d) }

// Preferences are the user's scheduling preferences.
type Preferences struct {
	// WorkoutDuration is the session length in minutes. Zero means the 45 minute default.
	WorkoutDuration int `json:"workoutDuration" validate:"gte=0,lte=240"`
	// RestDays are always rest. A nil slice means the default of Sunday, an empty slice means no fixed rest days.
	RestDays    []Day  `json:"restDays"`
	WorkoutTime string `json:"workoutTime,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
}

// FitnessProfile holds the attributes plans are generated from.
type FitnessProfile struct {
	UserID             string        `json:"userId"`
	Goals              []Goal        `json:"goals"`
	FitnessLevel       FitnessLevel  `json:"fitnessLevel" validate:"required"`
	Age                int           `json:"age" validate:"gte=13,lte=120"`
	Gender             Gender        `json:"gender" validate:"required"`
	HeightCm           float64       `json:"heightCm" validate:"gt=50,lt=300"`
	WeightKg           float64       `json:"weightKg" validate:"gt=20,lt=500"`
	ActivityLevel      ActivityLevel `json:"activityLevel"`
	WorkoutFrequency   int           `json:"workoutFrequency" validate:"gte=1,lte=7"`
	AvailableEquipment []string      `json:"availableEquipment"`
	HealthConditions   []string      `json:"healthConditions"`
	DietaryPreferences []DietaryTag  `json:"dietaryPreferences"`
	Allergens          []string      `json:"allergens"`
	Preferences        Preferences   `json:"preferences"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// PrimaryGoal is the first declared goal, or general fitness when none is declared.
func (p FitnessProfile) PrimaryGoal() Goal {
	if len(p.Goals) == 0 {
		return GoalGeneralFitness
	}
	return p.Goals[0]
}

// DefaultProfile is used in place of a missing profile when the default profile policy is enabled.
func DefaultProfile(userID string) FitnessProfile {
	return FitnessProfile{
		UserID:             userID,
		Goals:              []Goal{GoalGeneralFitness},
		FitnessLevel:       LevelBeginner,
		Age:                30, //nolint:mnd // default profile.
		Gender:             GenderOther,
		HeightCm:           170, //nolint:mnd // default profile.
		WeightKg:           70,  //nolint:mnd // default profile.
		ActivityLevel:      ActivityModerate,
		WorkoutFrequency:   3, //nolint:mnd // default profile.
		AvailableEquipment: []string{"none"},
		HealthConditions:   nil,
		DietaryPreferences: nil,
		Allergens:          nil,
		Preferences: Preferences{
			WorkoutDuration: defaultWorkoutMinutes,
			RestDays:        nil,
			WorkoutTime:     "",
		},
		UpdatedAt: time.Time{},
	}
}

// PreferenceOverrides are request scoped changes layered on top of the stored profile.
// Nil fields leave the stored value alone.
type PreferenceOverrides struct {
	Goals              []Goal         `json:"goals,omitempty"`
	FitnessLevel       *FitnessLevel  `json:"fitnessLevel,omitempty"`
	ActivityLevel      *ActivityLevel `json:"activityLevel,omitempty"`
	WeightKg           *float64       `json:"weightKg,omitempty" validate:"omitempty,gt=20,lt=500"`
	WorkoutFrequency   *int           `json:"workoutFrequency,omitempty" validate:"omitempty,gte=1,lte=7"`
	AvailableEquipment []string       `json:"availableEquipment,omitempty"`
	HealthConditions   []string       `json:"healthConditions,omitempty"`
	DietaryPreferences []DietaryTag   `json:"dietaryPreferences,omitempty"`
	Allergens          []string       `json:"allergens,omitempty"`
	WorkoutDuration    *int           `json:"workoutDuration,omitempty" validate:"omitempty,gte=0,lte=240"`
	RestDays           []Day          `json:"restDays,omitempty"`
	WorkoutTime        *string        `json:"workoutTime,omitempty"`
}

// Apply shallow merges the overrides onto p.
func (o PreferenceOverrides) Apply(p FitnessProfile) FitnessProfile {
	if o.Goals != nil {
		p.Goals = o.Goals
	}
	if o.FitnessLevel != nil {
		p.FitnessLevel = *o.FitnessLevel
	}
	if o.ActivityLevel != nil {
		p.ActivityLevel = *o.ActivityLevel
	}
	if o.WeightKg != nil {
		p.WeightKg = *o.WeightKg
	}
	if o.WorkoutFrequency != nil {
		p.WorkoutFrequency = *o.WorkoutFrequency
	}
	if o.AvailableEquipment != nil {
		p.AvailableEquipment = o.AvailableEquipment
	}
	if o.HealthConditions != nil {
		p.HealthConditions = o.HealthConditions
	}
	if o.DietaryPreferences != nil {
		p.DietaryPreferences = o.DietaryPreferences
	}
	if o.Allergens != nil {
		p.Allergens = o.Allergens
	}
	if o.WorkoutDuration != nil {
		p.Preferences.WorkoutDuration = *o.WorkoutDuration
	}
	if o.RestDays != nil {
		p.Preferences.RestDays = o.RestDays
	}
	if o.WorkoutTime != nil {
		p.Preferences.WorkoutTime = *o.WorkoutTime
	}
	return p
}

// MuscleGroups lists the muscles an exercise trains.
type MuscleGroups struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

// ExerciseRecord is an entry of the exercise catalog.
type ExerciseRecord struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Category            string       `json:"category"`
	DescriptionMarkdown string       `json:"descriptionMarkdown,omitempty"`
	MuscleGroups        MuscleGroups `json:"muscleGroups"`
	Equipment           []string     `json:"equipment"`
	Difficulty          FitnessLevel `json:"difficulty"`
	Sets                int          `json:"sets,omitempty"`
	Reps                int          `json:"reps,omitempty"`
	// Duration and RestTime are in seconds.
	Duration           int      `json:"duration,omitempty"`
	RestTime           int      `json:"restTime,omitempty"`
	CaloriesPerMinute  float64  `json:"caloriesBurnedPerMinute"`
	Goals              []Goal   `json:"goals,omitempty"`
	Contraindications  []string `json:"contraindications,omitempty"`
	PopularityScore    *float64 `json:"popularityScore,omitempty"`
	EffectivenessScore *float64 `json:"effectivenessScore,omitempty"`
}

// InferGoals derives goal tags from the exercise category. Unknown categories yield no tags.
func InferGoals(category string) []Goal {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "cardio", "hiit":
		return []Goal{GoalWeightLoss, GoalEndurance}
	case "strength":
		return []Goal{GoalMuscleGain, GoalStrength}
	case "flexibility", "yoga", "mobility":
		return []Goal{GoalFlexibility}
	}
	return nil
}

// Macros are grams of protein, carbohydrates and fat.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DietaryInfo flags what a food is compatible with.
type DietaryInfo struct {
	IsVegetarian bool     `json:"isVegetarian"`
	IsVegan      bool     `json:"isVegan"`
	IsGlutenFree bool     `json:"isGlutenFree"`
	IsKeto       bool     `json:"isKeto"`
	Allergens    []string `json:"allergens,omitempty"`
}

// FoodRecord is an entry of the food catalog.
type FoodRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Macros      Macros      `json:"macros"`
	ServingSize string      `json:"servingSize"`
	MealTypes   []MealType  `json:"mealTypes"`
	DietaryInfo DietaryInfo `json:"dietaryInfo"`
}

// ScoredExercise is a candidate with its relevance score.
type ScoredExercise struct {
	Exercise ExerciseRecord `json:"exercise"`
	Score    float64        `json:"score"`
}

// DayKind tells workout days from rest days.
type DayKind string

const (
	DayKindRest    DayKind = "rest"
	DayKindWorkout DayKind = "workout"
)

// PlannedExercise is an exercise prescribed on a workout day.
type PlannedExercise struct {
	ExerciseID       string  `json:"exerciseId"`
	Name             string  `json:"name"`
	Sets             int     `json:"sets"`
	Reps             int     `json:"reps,omitempty"`
	DurationSeconds  int     `json:"durationSeconds,omitempty"`
	RestSeconds      int     `json:"restSeconds"`
	EstimatedSeconds int     `json:"estimatedSeconds"`
	Score            float64 `json:"score"`
}

// DaySchedule is either a rest day or a workout day. Only workout days carry a split and exercises.
type DaySchedule struct {
	Day                      Day               `json:"day"`
	Kind                     DayKind           `json:"kind"`
	Split                    Split             `json:"split,omitempty"`
	Exercises                []PlannedExercise `json:"exercises,omitempty"`
	EstimatedDurationSeconds int               `json:"estimatedDurationSeconds,omitempty"`
	EstimatedCalories        int               `json:"estimatedCalories,omitempty"`
	// UsedFallback is set when the split had too few matching exercises and the full candidate list was used.
	UsedFallback bool `json:"usedFallback,omitempty"`
	NeedsData    bool `json:"needsData,omitempty"`
}

// WorkoutPlan is a generated weekly schedule.
type WorkoutPlan struct {
	PlanID             string         `json:"planId"`
	UserID             string         `json:"userId"`
	Goal               Goal           `json:"goal"`
	FitnessLevel       FitnessLevel   `json:"fitnessLevel"`
	Schedule           [7]DaySchedule `json:"schedule"`
	RelaxedFilter      bool           `json:"relaxedFilter"`
	Reasoning          string         `json:"reasoning"`
	GeneratedAt        time.Time      `json:"generatedAt"`
	UsedDefaultProfile bool           `json:"usedDefaultProfile"`
	CatalogAvailable   bool           `json:"catalogAvailable"`
	CatalogVersion     int64          `json:"catalogVersion,omitempty"`
}

// WorkoutDays counts the workout entries of the schedule.
func (p WorkoutPlan) WorkoutDays() int {
	n := 0
	for _, d := range p.Schedule {
		if d.Kind == DayKindWorkout {
			n++
		}
	}
	return n
}

// MacroTargets are daily macronutrient targets in grams along with the percentage split they came from.
type MacroTargets struct {
	ProteinGrams   int `json:"proteinGrams"`
	CarbsGrams     int `json:"carbsGrams"`
	FatsGrams      int `json:"fatsGrams"`
	ProteinPercent int `json:"proteinPercent"`
	CarbsPercent   int `json:"carbsPercent"`
	FatsPercent    int `json:"fatsPercent"`
}

// Calories is the energy the macro targets add up to.
func (m MacroTargets) Calories() int {
	return m.ProteinGrams*caloriesPerGramProtein + m.CarbsGrams*caloriesPerGramCarbs + m.FatsGrams*caloriesPerGramFat
}

// MealPlan is one meal with its calorie target and picked foods.
type MealPlan struct {
	Type           MealType     `json:"type"`
	TargetCalories int          `json:"targetCalories"`
	Foods          []FoodRecord `json:"foods"`
	NeedsData      bool         `json:"needsData,omitempty"`
}

// NutritionPlan is the generated daily calorie, macro and meal breakdown.
type NutritionPlan struct {
	PlanID             string       `json:"planId"`
	UserID             string       `json:"userId"`
	BMR                float64      `json:"bmr"`
	TDEE               int          `json:"tdee"`
	CalorieAdjustment  int          `json:"calorieAdjustment"`
	DailyCalories      int          `json:"dailyCalories"`
	Macros             MacroTargets `json:"macros"`
	Meals              []MealPlan   `json:"meals"`
	HydrationMl        int          `json:"hydrationMl"`
	Reasoning          string       `json:"reasoning"`
	GeneratedAt        time.Time    `json:"generatedAt"`
	UsedDefaultProfile bool         `json:"usedDefaultProfile"`
	CatalogAvailable   bool         `json:"catalogAvailable"`
	CatalogVersion     int64        `json:"catalogVersion,omitempty"`
}

