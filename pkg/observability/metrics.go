package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// InteractionsTotal counts interaction events processed per session loop
	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphbrowser_interactions_total",
			Help: "Total number of interaction events processed",
		},
		[]string{"kind"},
	)

	// NeighborFetchSeconds tracks round-trip time of neighbor expansion queries
	NeighborFetchSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphbrowser_neighbor_fetch_seconds",
			Help:    "Duration of neighbor expansion queries",
			Buckets: prometheus.DefBuckets,
		},
	)

	// NeighborFetchErrors counts expansion queries that failed
	NeighborFetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "graphbrowser_neighbor_fetch_errors_total",
			Help: "Total number of failed neighbor expansion queries",
		},
	)

	// SessionsActive tracks currently open exploration sessions
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphbrowser_sessions_active",
			Help: "Number of currently open exploration sessions",
		},
	)

	// SessionsTotal counts sessions ever opened
	SessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "graphbrowser_sessions_total",
			Help: "Total number of exploration sessions opened",
		},
	)

	// GraphNodes tracks the size of the in-memory graph per session
	GraphNodes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphbrowser_graph_nodes",
			Help: "Node count of a session's in-memory graph",
		},
		[]string{"session_id"},
	)
)

func init() {
	prometheus.MustRegister(InteractionsTotal)
	prometheus.MustRegister(NeighborFetchSeconds)
	prometheus.MustRegister(NeighborFetchErrors)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(SessionsTotal)
	prometheus.MustRegister(GraphNodes)
}
