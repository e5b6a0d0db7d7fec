package main

import (
	"net/http"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
)

// overrides decodes the optional PreferenceOverrides body. The bool is false when a 400 has already been written.
func (app *application) overrides(w http.ResponseWriter, r *http.Request) (fitness.PreferenceOverrides, bool) {
	var o fitness.PreferenceOverrides
	if err := decodeJSON(r, w, &o); err != nil && !errors.Is(err, errEmptyBody) {
		app.badRequest(w, r, err)
		return fitness.PreferenceOverrides{}, false
	}
	if err := app.validate.StructCtx(r.Context(), o); err != nil {
		app.badRequest(w, r, err)
		return fitness.PreferenceOverrides{}, false
	}
	return o, true
}

func (app *application) workoutPlanPOST(w http.ResponseWriter, r *http.Request) {
	r, userID, ok := app.userID(w, r)
	if !ok {
		return
	}
	o, ok := app.overrides(w, r)
	if !ok {
		return
	}
	plan, err := app.service.GenerateWorkoutPlan(r.Context(), userID, o)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, plan)
}

func (app *application) nutritionPlanPOST(w http.ResponseWriter, r *http.Request) {
	r, userID, ok := app.userID(w, r)
	if !ok {
		return
	}
	o, ok := app.overrides(w, r)
	if !ok {
		return
	}
	plan, err := app.service.GenerateNutritionPlan(r.Context(), userID, o)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, plan)
}
