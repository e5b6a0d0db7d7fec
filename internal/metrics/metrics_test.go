package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/myrjola/fitplanner/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPlan(t *testing.T) {
	before := testutil.ToFloat64(metrics.PlansGenerated.WithLabelValues(metrics.PlanKindWorkout, "ok"))
	metrics.RecordPlan(metrics.PlanKindWorkout, "ok", 5*time.Millisecond)
	after := testutil.ToFloat64(metrics.PlansGenerated.WithLabelValues(metrics.PlanKindWorkout, "ok"))
	if after-before != 1 {
		t.Errorf("plans generated delta = %v, want 1", after-before)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{name: "success", err: nil, result: "success"},
		{name: "failure", err: errors.New("disk on fire"), result: "failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.CatalogReloads.WithLabelValues(metrics.CatalogFoods, tt.result)
			before := testutil.ToFloat64(counter)
			metrics.RecordCatalogLoad(metrics.CatalogFoods, tt.err)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("reloads delta = %v, want 1", got)
			}
		})
	}
}

func TestUpdateCatalogGauges(t *testing.T) {
	metrics.UpdateCatalogGauges(7, 12, 30)
	if got := testutil.ToFloat64(metrics.CatalogVersion); got != 7 {
		t.Errorf("version = %v, want 7", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogRecords.WithLabelValues(metrics.CatalogExercises)); got != 12 {
		t.Errorf("exercises = %v, want 12", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogRecords.WithLabelValues(metrics.CatalogFoods)); got != 30 {
		t.Errorf("foods = %v, want 30", got)
	}
}
