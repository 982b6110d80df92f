// Package observability holds Prometheus metric definitions for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crosspost_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AggregatorRequests counts outbound aggregator API calls by operation and outcome.
	AggregatorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crosspost_aggregator_requests_total",
		Help: "Total number of aggregator API requests by operation and outcome",
	}, []string{"operation", "outcome"})

	// AggregatorLatency records aggregator API call latency by operation.
	AggregatorLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crosspost_aggregator_latency_seconds",
		Help:    "Aggregator API call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)
