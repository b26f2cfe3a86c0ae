package metrics

import (
	"time"

	"github.com/o0olele/wayfinder-go/graph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RouteSearchesTotal counts searches by outcome (found, not_found, unknown_node, no_snap).
	RouteSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_route_searches_total",
			Help: "Total number of route searches",
		},
		[]string{"outcome"},
	)

	// RouteSearchDuration measures A* search time.
	RouteSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_route_search_duration_seconds",
			Help:    "Duration of route searches in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// GraphNodes tracks the node count of the loaded graph.
	GraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfinder_graph_nodes",
			Help: "Number of nodes in the loaded navigation graph",
		},
	)

	// GraphEdges tracks the directed edge count of the loaded graph.
	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfinder_graph_edges",
			Help: "Number of directed edges in the loaded navigation graph",
		},
	)

	// HTTPRequestsTotal counts API requests by route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveSearch records one search. It matches query.Observer.
func ObserveSearch(outcome string, took time.Duration) {
	RouteSearchesTotal.WithLabelValues(outcome).Inc()
	RouteSearchDuration.Observe(took.Seconds())
}

// SetGraphStats publishes the size of the loaded graph.
func SetGraphStats(st graph.Stats) {
	GraphNodes.Set(float64(st.NodeCount))
	GraphEdges.Set(float64(st.EdgeCount))
}
