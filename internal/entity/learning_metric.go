package entity

import "time"

// LearningMetric is a daily accuracy aggregate keyed by
// (date, symbol, direction, timeframe). Rows are derived from
// signal_events joined with signal_outcomes and can be recomputed at any
// time; dashboards read them, nothing else depends on them.
type LearningMetric struct {
	ID             int64           `json:"id"`
	Date           time.Time       `gorm:"type:date;uniqueIndex:idx_learning_metrics_key;not null" json:"date"`
	Symbol         string          `gorm:"uniqueIndex:idx_learning_metrics_key;not null" json:"symbol"`
	Direction      SignalDirection `gorm:"uniqueIndex:idx_learning_metrics_key;not null" json:"direction"`
	Timeframe      Horizon         `gorm:"uniqueIndex:idx_learning_metrics_key;not null" json:"timeframe"`
	TotalSignals   int             `gorm:"not null" json:"total_signals"`
	CorrectSignals int             `gorm:"not null" json:"correct_signals"`
	AvgReturn      float64         `json:"avg_return"`
	MaxReturn      float64         `json:"max_return"`
	MinReturn      float64         `json:"min_return"`
	AccuracyPct    float64         `json:"accuracy_pct"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LearningMetric) TableName() string {
	return "learning_metrics"
}
