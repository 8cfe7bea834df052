package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_errors_total",
			Help: "Total number of logged errors.",
		},
		[]string{"type"},
	)
	JobsCreatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_jobs_created_total",
			Help: "Total number of jobs stored, by source.",
		},
		[]string{"source"},
	)
	DuplicatesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_duplicates_total",
			Help: "Postings rejected or folded as duplicates, by kind (exact, fuzzy).",
		},
		[]string{"kind"},
	)
	MatchRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_match_requests_total",
			Help: "Total number of skill match and recommendation requests.",
		},
		[]string{"kind"},
	)
	SearchCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_search_cache_total",
			Help: "Job search cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)
	IngestionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobmarket_ingestion_duration_seconds",
			Help:    "Duration of one ingestion run per source.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		ErrorsCounter,
		JobsCreatedCounter,
		DuplicatesCounter,
		MatchRequestsCounter,
		SearchCacheCounter,
		IngestionDuration,
	)
}

const (
	DuplicateExact = "exact"
	DuplicateFuzzy = "fuzzy"
)
