package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated prometheus.Counter
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   prometheus.Histogram

	// Quick-add metrics
	QuickAddRequests *prometheus.CounterVec
	ParseDuration    *prometheus.HistogramVec

	// Day-list cache metrics
	ListCacheHits   prometheus.Counter
	ListCacheMisses prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pocketledger_transactions_created_total",
			Help: "Total number of transactions created",
		}),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pocketledger_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pocketledger_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pocketledger_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 10000},
		}),

		QuickAddRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_quickadd_requests_total",
				Help: "Total number of quick-add requests by outcome",
			},
			[]string{"outcome"},
		),
		ParseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketledger_parse_duration_seconds",
				Help:    "Duration of free-text parsing by parser",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"parser"},
		),

		ListCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pocketledger_list_cache_hits_total",
			Help: "Total number of day-list cache hits",
		}),
		ListCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pocketledger_list_cache_misses_total",
			Help: "Total number of day-list cache misses",
		}),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketledger_rate_limit_hits_total",
				Help: "Total number of rate limited requests by endpoint",
			},
			[]string{"endpoint"},
		),
	}
}
