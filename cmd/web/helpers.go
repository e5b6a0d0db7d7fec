package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/myrjola/fitplanner/internal/errors"
	"github.com/myrjola/fitplanner/internal/fitness"
	"github.com/myrjola/fitplanner/internal/logging"
)

const maxBodyBytes = 64 << 10

var errEmptyBody = errors.NewSentinel("empty request body")

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.MarshalContext(r.Context(), v)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(b); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "failed to write response", errors.SlogError(err))
	}
}

// decodeJSON reads a single JSON document from the request body into dst. Unknown fields are rejected.
// An empty body returns errEmptyBody and leaves dst untouched.
func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err = dec.DecodeContext(r.Context(), dst); err != nil {
		return errors.Wrap(err, "decode body")
	}
	if dec.More() {
		return errors.New("body must hold a single JSON document")
	}
	return nil
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{
		Error:  http.StatusText(http.StatusInternalServerError),
		Fields: nil,
	})
}

// badRequest responds with 400. Validation errors are listed per field.
func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "bad request", errors.SlogError(err))
	resp := errorResponse{Error: "invalid request", Fields: nil}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Namespace(), Rule: fe.Tag()})
		}
	} else {
		resp.Error = "invalid request: " + rootMessage(err)
	}
	app.writeJSON(w, r, http.StatusBadRequest, resp)
}

// rootMessage is the message of the innermost error so internal wrapping context stays out of responses.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// serviceError maps errors from the fitness service to responses.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fitness.ErrProfileNotFound):
		app.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "profile not found", Fields: nil})
	case errors.Is(err, fitness.ErrNotFound):
		app.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found", Fields: nil})
	case errors.Is(err, fitness.ErrInvalidEnum):
		app.badRequest(w, r, err)
	case errors.Is(err, fitness.ErrCatalogLoadFailure), errors.Is(err, fitness.ErrCatalogUnavailable):
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "catalog unavailable", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: "catalog unavailable", Fields: nil})
	default:
		app.serverError(w, r, err)
	}
}

// userID reads the userID path value and returns r with the user tagged onto its log context.
// The bool is false when a 400 has already been written.
func (app *application) userID(w http.ResponseWriter, r *http.Request) (*http.Request, string, bool) {
	id := r.PathValue("userID")
	if err := app.validate.Var(id, "required,max=128,printascii"); err != nil {
		app.badRequest(w, r, errors.Wrap(err, "validate user id"))
		return r, "", false
	}
	return r.WithContext(logging.WithUserID(r.Context(), id)), id, true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
