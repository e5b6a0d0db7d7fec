package main

import (
	"bytes"
	"net/http"

	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
)

type exerciseResponse struct {
	fitness.ExerciseRecord
	// DescriptionHTML is DescriptionMarkdown rendered to HTML. Raw HTML in the markdown is omitted.
	DescriptionHTML string `json:"descriptionHtml"`
}

func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	ex, err := app.service.GetExercise(r.Context(), r.PathValue("id"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err = app.markdown.Convert([]byte(ex.DescriptionMarkdown), &buf); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render description"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, exerciseResponse{ExerciseRecord: ex, DescriptionHTML: buf.String()})
}
