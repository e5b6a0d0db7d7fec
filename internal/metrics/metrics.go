// Package metrics holds the Prometheus collectors of the plan generator and the HTTP API.
//
// Collectors register with the default registry and are served by promhttp on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PlanKindWorkout         = "workout"
	PlanKindNutrition       = "nutrition"
	PlanKindRecommendations = "recommendations"

	CatalogExercises = "exercises"
	CatalogFoods     = "foods"
)

var (
	// PlansGenerated counts generated plans by kind and outcome.
	PlansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplanner_plans_generated_total",
			Help: "Total number of generated plans",
		},
		[]string{"kind", "outcome"}, // outcome: "ok", "default_profile", "catalog_unavailable", "error"
	)

	PlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitplanner_plan_duration_seconds",
			Help:    "Time spent generating a plan including profile lookup",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplanner_catalog_reloads_total",
			Help: "Total number of catalog reloads by catalog and result",
		},
		[]string{"catalog", "result"},
	)

	CatalogRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fitplanner_catalog_records",
			Help: "Number of records in the active catalog snapshot",
		},
		[]string{"catalog"},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitplanner_catalog_version",
			Help: "Version of the active catalog snapshot",
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplanner_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "pattern", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitplanner_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)
)

// RecordPlan records a plan generation.
func RecordPlan(kind, outcome string, duration time.Duration) {
	PlansGenerated.WithLabelValues(kind, outcome).Inc()
	PlanDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCatalogLoad records the result of loading one catalog.
func RecordCatalogLoad(catalog string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	CatalogReloads.WithLabelValues(catalog, result).Inc()
}

// UpdateCatalogGauges reflects a newly swapped in snapshot.
func UpdateCatalogGauges(version int64, exercises, foods int) {
	CatalogVersion.Set(float64(version))
	CatalogRecords.WithLabelValues(CatalogExercises).Set(float64(exercises))
	CatalogRecords.WithLabelValues(CatalogFoods).Set(float64(foods))
}

// RecordAPIRequest records a served request. pattern is the ServeMux pattern to keep label cardinality bounded.
func RecordAPIRequest(method, pattern, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, pattern, status).Inc()
	APIRequestDuration.WithLabelValues(method, pattern).Observe(duration.Seconds())
}
