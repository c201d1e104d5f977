package dto

import "time"

// HorizonAccuracy is the live accuracy aggregate for one evaluation horizon.
type HorizonAccuracy struct {
	Horizon     string  `json:"horizon"`
	Total       int     `json:"total"`
	Correct     int     `json:"correct"`
	AccuracyPct float64 `json:"accuracy_pct"`
}

// GetLearningMetricsParam filters the learning metrics listing.
type GetLearningMetricsParam struct {
	From      *time.Time
	To        *time.Time
	Symbol    string
	Direction string
	Timeframe string
	Limit     int
}

// LearningMetricResponse is one daily aggregate row as served to dashboards.
type LearningMetricResponse struct {
	Date           string  `json:"date"`
	Symbol         string  `json:"symbol"`
	Direction      string  `json:"direction"`
	Timeframe      string  `json:"timeframe"`
	TotalSignals   int     `json:"total_signals"`
	CorrectSignals int     `json:"correct_signals"`
	AvgReturn      float64 `json:"avg_return"`
	MaxReturn      float64 `json:"max_return"`
	MinReturn      float64 `json:"min_return"`
	AccuracyPct    float64 `json:"accuracy_pct"`
}
