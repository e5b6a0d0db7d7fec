package fitness

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteProfileRepository implements ProfileStore.
type sqliteProfileRepository struct {
	baseRepository
}

func newSQLiteProfileRepository(db *sqlite.Database) *sqliteProfileRepository {
	return &sqliteProfileRepository{
		baseRepository: newBaseRepository(db),
	}
}

// Get retrieves the profile of a user.
func (r *sqliteProfileRepository) Get(ctx context.Context, userID string) (FitnessProfile, error) {
	var (
		p                                             FitnessProfile
		goals, equipment, conditions, diet, allergens string
		fitnessLevel, gender, activityLevel           string
		restDays                                      sql.NullString
		updatedAt                                     string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT user_id, goals, fitness_level, age, gender, height_cm, weight_kg, activity_level,
		       workout_frequency, available_equipment, health_conditions, dietary_preferences, allergens,
		       workout_duration, rest_days, workout_time, updated_at
		FROM fitness_profiles
		WHERE user_id = ?`, userID).Scan(
		&p.UserID, &goals, &fitnessLevel, &p.Age, &gender, &p.HeightCm, &p.WeightKg, &activityLevel,
		&p.WorkoutFrequency, &equipment, &conditions, &diet, &allergens,
		&p.Preferences.WorkoutDuration, &restDays, &p.Preferences.WorkoutTime, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return FitnessProfile{}, errors.Wrap(ErrProfileNotFound, "query profile", slog.String("user_id", userID))
	}
	if err != nil {
		return FitnessProfile{}, errors.Wrap(err, "query profile", slog.String("user_id", userID))
	}

	if p.FitnessLevel, err = ParseFitnessLevel(fitnessLevel); err != nil {
		return FitnessProfile{}, err
	}
	if p.Gender, err = ParseGender(gender); err != nil {
		return FitnessProfile{}, err
	}
	if activityLevel != "" {
		if p.ActivityLevel, err = ParseActivityLevel(activityLevel); err != nil {
			return FitnessProfile{}, err
		}
	}
	if p.Goals, err = decodeSet[Goal](goals); err != nil {
		return FitnessProfile{}, errors.Wrap(err, "decode goals")
	}
	if p.AvailableEquipment, err = decodeSet[string](equipment); err != nil {
		return FitnessProfile{}, errors.Wrap(err, "decode equipment")
	}
	if p.HealthConditions, err = decodeSet[string](conditions); err != nil {
		return FitnessProfile{}, errors.Wrap(err, "decode health conditions")
	}
	if p.DietaryPreferences, err = decodeSet[DietaryTag](diet); err != nil {
		return FitnessProfile{}, errors.Wrap(err, "decode dietary preferences")
	}
	if p.Allergens, err = decodeSet[string](allergens); err != nil {
		return FitnessProfile{}, errors.Wrap(err, "decode allergens")
	}
	if restDays.Valid {
		if p.Preferences.RestDays, err = decodeSet[Day](restDays.String); err != nil {
			return FitnessProfile{}, errors.Wrap(err, "decode rest days")
		}
		// An explicit empty list means no fixed rest days and must not collapse to the default.
		if p.Preferences.RestDays == nil {
			p.Preferences.RestDays = []Day{}
		}
	}
	if p.UpdatedAt, err = time.Parse(timestampFormat, updatedAt); err != nil {
		return FitnessProfile{}, errors.Wrap(err, "parse updated_at")
	}
	return p, nil
}

// Save creates or replaces the profile of p.UserID.
func (r *sqliteProfileRepository) Save(ctx context.Context, p FitnessProfile) error {
	var (
		cols [5]string
		err  error
	)
	if cols[0], err = encodeSet(p.Goals); err != nil {
		return err
	}
	if cols[1], err = encodeSet(p.AvailableEquipment); err != nil {
		return err
	}
	if cols[2], err = encodeSet(p.HealthConditions); err != nil {
		return err
	}
	if cols[3], err = encodeSet(p.DietaryPreferences); err != nil {
		return err
	}
	if cols[4], err = encodeSet(p.Allergens); err != nil {
		return err
	}
	restDays := sql.NullString{String: "", Valid: false}
	if p.Preferences.RestDays != nil {
		if restDays.String, err = encodeSet(p.Preferences.RestDays); err != nil {
			return err
		}
		restDays.Valid = true
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO fitness_profiles (user_id, goals, fitness_level, age, gender, height_cm, weight_kg,
		                              activity_level, workout_frequency, available_equipment, health_conditions,
		                              dietary_preferences, allergens, workout_duration, rest_days, workout_time,
		                              updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ'))
		ON CONFLICT (user_id) DO UPDATE SET
			goals = excluded.goals,
			fitness_level = excluded.fitness_level,
			age = excluded.age,
			gender = excluded.gender,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			activity_level = excluded.activity_level,
			workout_frequency = excluded.workout_frequency,
			available_equipment = excluded.available_equipment,
			health_conditions = excluded.health_conditions,
			dietary_preferences = excluded.dietary_preferences,
			allergens = excluded.allergens,
			workout_duration = excluded.workout_duration,
			rest_days = excluded.rest_days,
			workout_time = excluded.workout_time,
			updated_at = excluded.updated_at`,
		p.UserID, cols[0], string(p.FitnessLevel), p.Age, string(p.Gender), p.HeightCm, p.WeightKg,
		string(p.ActivityLevel), p.WorkoutFrequency, cols[1], cols[2],
		cols[3], cols[4], p.Preferences.WorkoutDuration, restDays, p.Preferences.WorkoutTime,
	)
	if err != nil {
		return errors.Wrap(err, "upsert profile", slog.String("user_id", p.UserID))
	}
	return nil
}
