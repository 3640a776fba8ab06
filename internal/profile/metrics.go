package profile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for every submission, by entity and outcome
	// (success, invalid, conflict, error).
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_profiles_submissions_total",
			Help: "Total number of submissions by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	// Counter for violations, by entity and violation kind
	violations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_profiles_violations_total",
			Help: "Total number of field violations reported, by entity and kind",
		},
		[]string{"entity", "kind"},
	)

	// Histogram for time spent in the storage gateway
	storageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "student_profiles_storage_duration_seconds",
			Help:    "Time spent in storage create/find calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity", "op"},
	)

	lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_profiles_lookups_total",
			Help: "Total number of resume lookups by outcome",
		},
		[]string{"outcome"},
	)
)
