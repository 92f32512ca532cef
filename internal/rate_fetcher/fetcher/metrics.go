package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeRejected = "rejected"
	outcomeStale    = "stale"
	outcomeSkipped  = "skipped"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genelpara_fetch_total",
		Help: "Polled fetches by outcome.",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "genelpara_fetch_duration_seconds",
		Help:    "Duration of rate api calls made by the fetcher.",
		Buckets: prometheus.DefBuckets,
	})

	rateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "genelpara_rate_limit_remaining",
		Help: "Remaining requests reported by the last response.",
	})
)
