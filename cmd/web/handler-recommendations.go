package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
)

func parseExerciseFilters(r *http.Request) (fitness.ExerciseFilters, error) {
	q := r.URL.Query()
	filters := fitness.ExerciseFilters{
		Category:    q.Get("category"),
		MuscleGroup: q.Get("muscleGroup"),
		Difficulty:  "",
		Limit:       0,
	}
	if s := q.Get("difficulty"); s != "" {
		level, err := fitness.ParseFitnessLevel(s)
		if err != nil {
			return fitness.ExerciseFilters{}, err
		}
		filters.Difficulty = level
	}
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			return fitness.ExerciseFilters{}, errors.Wrap(err, "parse limit", slog.String("limit", s))
		}
		filters.Limit = limit
	}
	return filters, nil
}

func (app *application) recommendedExercisesGET(w http.ResponseWriter, r *http.Request) {
	r, userID, ok := app.userID(w, r)
	if !ok {
		return
	}
	filters, err := parseExerciseFilters(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if err = app.validate.StructCtx(r.Context(), filters); err != nil {
		app.badRequest(w, r, err)
		return
	}
	recs, err := app.service.GetRecommendedExercises(r.Context(), userID, filters)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, recs)
}
