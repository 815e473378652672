package metrics

import (
	"testing"
	"time"
)

func TestNewRegistryInitializesAllMetrics(t *testing.T) {
	r := NewRegistry()

	if r.HTTPRequestsTotal == nil || r.HTTPRequestDuration == nil {
		t.Error("HTTP metrics not initialized")
	}
	if r.RoutesTotal == nil || r.RouteDuration == nil || r.NoRouteTotal == nil {
		t.Error("routing metrics not initialized")
	}
	if r.StorageOperationsTotal == nil {
		t.Error("storage metrics not initialized")
	}
	if r.UptimeSeconds == nil {
		t.Error("system metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("prometheus registry missing")
	}
}

func TestRecordersDoNotPanic(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/api/navigation/route", "200", 12*time.Millisecond)
	r.RecordStorageOperation("GetPOI", "ok", time.Millisecond)
	r.RecordRoute(true, "ok", 5*time.Millisecond, 123.4, 2)
	r.RecordRoute(false, "no_route", 2*time.Millisecond, 0, 0)
	r.RecordIndexRebuild("node_created", "floor-1", 42)
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	mfs, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected gathered metric families")
	}
}

func TestDefaultRegistrySingleton(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()
	if a != b {
		t.Error("DefaultRegistry must return the same instance")
	}
}
