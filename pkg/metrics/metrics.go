package metrics

import (
	"runtime"
	"strconv"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the size of an HTTP response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight increments the in-flight request gauge
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight request gauge
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordStorageOperation records a storage operation
func (r *Registry) RecordStorageOperation(operation, status string, duration time.Duration) {
	r.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	r.StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRoute records a completed route computation
func (r *Registry) RecordRoute(accessible bool, status string, duration time.Duration, distanceMeters float64, floorsSpanned int) {
	acc := strconv.FormatBool(accessible)
	r.RoutesTotal.WithLabelValues(acc, status).Inc()
	r.RouteDuration.WithLabelValues(acc).Observe(duration.Seconds())

	if status == "ok" {
		r.RouteDistanceMeters.Observe(distanceMeters)
		r.RouteFloorsSpanned.Observe(float64(floorsSpanned))
	}
	if status == "no_route" {
		r.NoRouteTotal.Inc()
	}
}

// RecordIndexRebuild records one spatial index rebuild and the resulting
// node count for the floor
func (r *Registry) RecordIndexRebuild(trigger, floorID string, indexedNodes int) {
	r.IndexRebuildsTotal.WithLabelValues(trigger).Inc()
	r.IndexedNodesPerFloor.WithLabelValues(floorID).Set(float64(indexedNodes))
}

// UpdateSystemMetrics refreshes uptime and runtime gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
