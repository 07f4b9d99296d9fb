// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines the Prometheus collectors for scholar-tags.
// Collectors are registered with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scholar_tags"

var (
	// Searches counts title searches by outcome: ok, invalid, fetch_error.
	Searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of title searches",
		},
		[]string{"outcome"},
	)

	// SearchPapers observes how many papers a search returned after filtering.
	SearchPapers = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_papers",
			Help:      "Papers returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
	)

	// TagMutations counts add/remove calls by result: changed, noop, error.
	TagMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tag_mutations_total",
			Help:      "Total number of tag add/remove calls",
		},
		[]string{"op", "result"},
	)

	// FetchDuration observes the latency of results page fetches.
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Results page fetch duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	// HTTPRequestDuration observes API request latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequests counts API requests.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		Searches,
		SearchPapers,
		TagMutations,
		FetchDuration,
		HTTPRequestDuration,
		HTTPRequests,
	)
}
