package common

import "time"

const (
	// Redis keys used by the outcome tracker.
	RedisKeySignalEvalLease = "signal.outcome.lease:%d"

	// Lease held while one tick evaluates a signal, so a concurrently
	// retried tick does not double-fetch the same symbol.
	SignalEvalLeaseTTL = 10 * time.Minute

	// system_monitoring metric names.
	MetricOutcomeTrackingRun       = "outcome_tracking_run"
	MetricLearningMetricsRecompute = "learning_metrics_recompute"
)
