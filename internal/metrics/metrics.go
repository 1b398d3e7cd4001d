package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedbackSubmissions counts accepted feedback items by type and
	// classified sentiment.
	FeedbackSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_feedback_submissions_total",
		Help: "Accepted feedback submissions by type and sentiment.",
	}, []string{"type", "sentiment"})

	// StatsQueries counts aggregate queries by scope (user, team, organization).
	StatsQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_stats_queries_total",
		Help: "Aggregate statistics queries by scope.",
	}, []string{"scope"})

	// PersistFailures counts appends that reached memory but failed to persist.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uplift_feedback_persist_failures_total",
		Help: "Feedback items kept in memory after a persistence failure.",
	})
)
