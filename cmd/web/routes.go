package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	api := func(h http.HandlerFunc) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(secureHeaders(noCache(app.timeout(h)))))
	}

	mux.Handle("GET /api/healthy", api(app.healthy))
	mux.Handle("GET /api/test/timeout", api(app.testTimeout))

	mux.Handle("GET /api/users/{userID}/profile", api(app.profileGET))
	mux.Handle("PUT /api/users/{userID}/profile", api(app.profilePUT))
	mux.Handle("POST /api/users/{userID}/workout-plan", api(app.workoutPlanPOST))
	mux.Handle("POST /api/users/{userID}/nutrition-plan", api(app.nutritionPlanPOST))
	mux.Handle("GET /api/users/{userID}/recommended-exercises", api(app.recommendedExercisesGET))

	mux.Handle("GET /api/exercises/{id}", api(app.exerciseGET))

	mux.Handle("GET /api/admin/catalog", api(app.catalogStatusGET))
	mux.Handle("POST /api/admin/catalog/reload", api(app.catalogReloadPOST))

	mux.Handle("GET /metrics", app.recoverPanic(promhttp.Handler()))

	return app.cors(mux)
}
