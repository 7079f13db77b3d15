package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partyround_transactions_total",
			Help: "Executed transactions by method and result",
		},
		[]string{"method", "result"},
	)
	txDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partyround_transaction_duration_seconds",
			Help:    "Transaction execution time",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	eventCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partyround_events_total",
			Help: "Persisted contract events by type",
		},
		[]string{"type"},
	)
)

func observeTx(method string, success bool, seconds float64) {
	result := "ok"
	if !success {
		result = "fail"
	}
	txCounter.WithLabelValues(method, result).Inc()
	txDuration.WithLabelValues(method).Observe(seconds)
}
