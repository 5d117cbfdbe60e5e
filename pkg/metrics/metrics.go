package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RPCFetchTotal counts fee-data round-trips per chain and outcome.
	RPCFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_router_rpc_fetch_total",
			Help: "Number of fee data RPC fetches, by chain and status.",
		},
		[]string{"chain", "status"},
	)

	// RPCFetchDuration observes fee-data round-trip latency per chain.
	RPCFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chain_router_rpc_fetch_duration_seconds",
			Help:    "Latency of fee data RPC fetches.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"chain"},
	)

	// GasCacheHits counts gas price cache hits.
	GasCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chain_router_gas_cache_hits_total",
			Help: "Number of gas price reads served from cache.",
		},
	)

	// GasCacheMisses counts gas price cache misses.
	GasCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chain_router_gas_cache_misses_total",
			Help: "Number of gas price reads requiring a live fetch.",
		},
	)

	// SelectionsTotal counts chain selections by outcome: the chosen chain
	// identifier, or "no_eligible_chain" when a hard filter emptied the set.
	SelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_router_selections_total",
			Help: "Number of chain selections, by outcome.",
		},
		[]string{"outcome"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		RPCFetchTotal,
		RPCFetchDuration,
		GasCacheHits,
		GasCacheMisses,
		SelectionsTotal,
	)
}
