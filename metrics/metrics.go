package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PathsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mktsim_paths_generated_total",
			Help: "Total number of price paths generated (by seeding mode).",
		},
		[]string{"seeded"},
	)

	BidAskSwaps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mktsim_bidask_swaps_total",
			Help: "Days on which a regime produced sell > buy and the pair was swapped.",
		},
	)

	PathDays = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mktsim_path_length",
			Help:    "Number of simulated days per generated path.",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mktsim_indicator_cache_hits_total",
			Help: "Indicator requests served from the memo cache (by indicator).",
		},
		[]string{"indicator"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mktsim_indicator_cache_misses_total",
			Help: "Indicator requests that triggered a computation (by indicator).",
		},
		[]string{"indicator"},
	)

	ReplayRejectedBars = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mktsim_replay_rejected_bars_total",
			Help: "Bars the streaming indicator suite refused during replay.",
		},
	)

	OrdersFilled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mktsim_paper_orders_filled_total",
			Help: "Orders filled by the paper executor against path quotes (by side).",
		},
		[]string{"side"},
	)
)

func init() {
	prometheus.MustRegister(PathsGenerated, BidAskSwaps, PathDays,
		CacheHits, CacheMisses, ReplayRejectedBars, OrdersFilled)
}
