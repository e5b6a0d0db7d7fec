package fitness

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/sqlite"
)

// sqliteCatalogRepository implements CatalogSource on the exercises and foods tables.
type sqliteCatalogRepository struct {
	baseRepository
}

func newSQLiteCatalogRepository(db *sqlite.Database) *sqliteCatalogRepository {
	return &sqliteCatalogRepository{
		baseRepository: newBaseRepository(db),
	}
}

// LoadExercises lists the exercise catalog in insertion order.
func (r *sqliteCatalogRepository) LoadExercises(ctx context.Context) (_ []ExerciseRecord, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, category, description_markdown, primary_muscles, secondary_muscles, equipment,
		       difficulty, sets, reps, duration_seconds, rest_seconds, calories_per_minute, goals,
		       contraindications, popularity_score, effectiveness_score
		FROM exercises
		ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "query exercises")
	}
	defer closeRows(rows, &err)

	var exercises []ExerciseRecord
	for rows.Next() {
		var ex ExerciseRecord
		if ex, err = scanExercise(rows); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate exercises")
	}
	return exercises, nil
}

func scanExercise(rows *sql.Rows) (ExerciseRecord, error) {
	var (
		ex                                         ExerciseRecord
		primary, secondary, equipment, goals, cons string
		difficulty                                 string
		popularity, effectiveness                  sql.NullFloat64
		err                                        error
	)
	if err = rows.Scan(&ex.ID, &ex.Name, &ex.Category, &ex.DescriptionMarkdown, &primary, &secondary, &equipment,
		&difficulty, &ex.Sets, &ex.Reps, &ex.Duration, &ex.RestTime, &ex.CaloriesPerMinute, &goals,
		&cons, &popularity, &effectiveness); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "scan exercise")
	}
	attr := slog.String("exercise_id", ex.ID)
	if ex.Difficulty, err = ParseFitnessLevel(difficulty); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "parse difficulty", attr)
	}
	if ex.MuscleGroups.Primary, err = decodeSet[string](primary); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "decode primary muscles", attr)
	}
	if ex.MuscleGroups.Secondary, err = decodeSet[string](secondary); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "decode secondary muscles", attr)
	}
	if ex.Equipment, err = decodeSet[string](equipment); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "decode equipment", attr)
	}
	if ex.Goals, err = decodeSet[Goal](goals); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "decode goals", attr)
	}
	if ex.Contraindications, err = decodeSet[string](cons); err != nil {
		return ExerciseRecord{}, errors.Wrap(err, "decode contraindications", attr)
	}
	if popularity.Valid {
		ex.PopularityScore = &popularity.Float64
	}
	if effectiveness.Valid {
		ex.EffectivenessScore = &effectiveness.Float64
	}
	return ex, nil
}

// LoadFoods lists the food catalog in insertion order.
func (r *sqliteCatalogRepository) LoadFoods(ctx context.Context) (_ []FoodRecord, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, calories, protein, carbs, fats, serving_size, meal_types,
		       is_vegetarian, is_vegan, is_gluten_free, is_keto, allergens
		FROM foods
		ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "query foods")
	}
	defer closeRows(rows, &err)

	var foods []FoodRecord
	for rows.Next() {
		var (
			food                FoodRecord
			mealTypes, allergen string
		)
		if err = rows.Scan(&food.ID, &food.Name, &food.Macros.Calories, &food.Macros.Protein, &food.Macros.Carbs,
			&food.Macros.Fats, &food.ServingSize, &mealTypes, &food.DietaryInfo.IsVegetarian,
			&food.DietaryInfo.IsVegan, &food.DietaryInfo.IsGlutenFree, &food.DietaryInfo.IsKeto,
			&allergen); err != nil {
			return nil, errors.Wrap(err, "scan food")
		}
		if food.MealTypes, err = decodeSet[MealType](mealTypes); err != nil {
			return nil, errors.Wrap(err, "decode meal types", slog.String("food_id", food.ID))
		}
		if food.DietaryInfo.Allergens, err = decodeSet[string](allergen); err != nil {
			return nil, errors.Wrap(err, "decode allergens", slog.String("food_id", food.ID))
		}
		foods = append(foods, food)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate foods")
	}
	return foods, nil
}

// UpsertExercise creates or replaces an exercise. Replaced exercises keep their catalog position.
func (r *sqliteCatalogRepository) UpsertExercise(ctx context.Context, ex ExerciseRecord) error {
	var (
		sets [5]string
		err  error
	)
	for i, values := range [][]string{
		ex.MuscleGroups.Primary, ex.MuscleGroups.Secondary, ex.Equipment, goalStrings(ex.Goals), ex.Contraindications,
	} {
		if sets[i], err = encodeSet(values); err != nil {
			return err
		}
	}
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (id, name, category, description_markdown, primary_muscles, secondary_muscles,
		                       equipment, difficulty, sets, reps, duration_seconds, rest_seconds,
		                       calories_per_minute, goals, contraindications, popularity_score, effectiveness_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			description_markdown = excluded.description_markdown,
			primary_muscles = excluded.primary_muscles,
			secondary_muscles = excluded.secondary_muscles,
			equipment = excluded.equipment,
			difficulty = excluded.difficulty,
			sets = excluded.sets,
			reps = excluded.reps,
			duration_seconds = excluded.duration_seconds,
			rest_seconds = excluded.rest_seconds,
			calories_per_minute = excluded.calories_per_minute,
			goals = excluded.goals,
			contraindications = excluded.contraindications,
			popularity_score = excluded.popularity_score,
			effectiveness_score = excluded.effectiveness_score`,
		ex.ID, ex.Name, ex.Category, ex.DescriptionMarkdown, sets[0], sets[1], sets[2], string(ex.Difficulty),
		ex.Sets, ex.Reps, ex.Duration, ex.RestTime, ex.CaloriesPerMinute, sets[3], sets[4],
		nullFloat(ex.PopularityScore), nullFloat(ex.EffectivenessScore))
	if err != nil {
		return errors.Wrap(err, "upsert exercise", slog.String("exercise_id", ex.ID))
	}
	return nil
}

// UpsertFood creates or replaces a food.
func (r *sqliteCatalogRepository) UpsertFood(ctx context.Context, food FoodRecord) error {
	mealTypes := make([]string, len(food.MealTypes))
	for i, m := range food.MealTypes {
		mealTypes[i] = string(m)
	}
	encodedMeals, err := encodeSet(mealTypes)
	if err != nil {
		return err
	}
	encodedAllergens, err := encodeSet(food.DietaryInfo.Allergens)
	if err != nil {
		return err
	}
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO foods (id, name, calories, protein, carbs, fats, serving_size, meal_types,
		                   is_vegetarian, is_vegan, is_gluten_free, is_keto, allergens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			calories = excluded.calories,
			protein = excluded.protein,
			carbs = excluded.carbs,
			fats = excluded.fats,
			serving_size = excluded.serving_size,
			meal_types = excluded.meal_types,
			is_vegetarian = excluded.is_vegetarian,
			is_vegan = excluded.is_vegan,
			is_gluten_free = excluded.is_gluten_free,
			is_keto = excluded.is_keto,
			allergens = excluded.allergens`,
		food.ID, food.Name, food.Macros.Calories, food.Macros.Protein, food.Macros.Carbs, food.Macros.Fats,
		food.ServingSize, encodedMeals, food.DietaryInfo.IsVegetarian, food.DietaryInfo.IsVegan,
		food.DietaryInfo.IsGlutenFree, food.DietaryInfo.IsKeto, encodedAllergens)
	if err != nil {
		return errors.Wrap(err, "upsert food", slog.String("food_id", food.ID))
	}
	return nil
}

func goalStrings(goals []Goal) []string {
	if goals == nil {
		return nil
	}
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}
