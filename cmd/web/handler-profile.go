package main

import (
	"net/http"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
)

func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	r, userID, ok := app.userID(w, r)
	if !ok {
		return
	}
	profile, err := app.service.GetProfile(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

// profilePUT replaces the whole profile. The user ID comes from the path and UpdatedAt is set on save.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	r, userID, ok := app.userID(w, r)
	if !ok {
		return
	}
	var profile fitness.FitnessProfile
	if err := decodeJSON(r, w, &profile); err != nil {
		app.badRequest(w, r, err)
		return
	}
	if profile.UserID != "" && profile.UserID != userID {
		app.badRequest(w, r, errors.New("userId does not match the path"))
		return
	}
	profile.UserID = userID
	if err := app.validate.StructCtx(r.Context(), profile); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if err := app.service.SaveProfile(r.Context(), profile); err != nil {
		app.serviceError(w, r, err)
		return
	}
	stored, err := app.service.GetProfile(r.Context(), userID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, stored)
}
