package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRoutingMetrics() {
	r.RoutesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_routes_total",
			Help: "Total number of route computations",
		},
		[]string{"accessible", "status"},
	)

	r.RouteDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfinder_route_duration_seconds",
			Help:    "Route computation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"accessible"},
	)

	r.RouteDistanceMeters = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_route_distance_meters",
			Help:    "Total walking distance of computed routes in meters",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		},
	)

	r.RouteFloorsSpanned = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_route_floors_spanned",
			Help:    "Number of floors a computed route crosses",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)

	r.NoRouteTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "wayfinder_no_route_total",
			Help: "Route requests that found no path between origin and destination",
		},
	)

	r.IndexRebuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_index_rebuilds_total",
			Help: "Spatial index rebuilds by trigger",
		},
		[]string{"trigger"},
	)

	r.IndexedNodesPerFloor = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wayfinder_indexed_nodes",
			Help: "Routing nodes currently held in the spatial index, per floor",
		},
		[]string{"floor_id"},
	)
}
