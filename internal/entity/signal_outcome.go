package entity

import "time"

// OutcomeStatus is the evaluation state of a SignalOutcome. It is distinct
// from SignalStatus: a signal event retires only on OutcomeStatusComplete.
type OutcomeStatus string

const (
	OutcomeStatusIncomplete OutcomeStatus = "incomplete"
	OutcomeStatusComplete   OutcomeStatus = "complete"
	OutcomeStatusError      OutcomeStatus = "error"
	OutcomeStatusSkipped    OutcomeStatus = "skipped"
)

// Horizon is one of the three fixed evaluation windows after signal emission.
type Horizon string

const (
	Horizon1h  Horizon = "1h"
	Horizon4h  Horizon = "4h"
	Horizon24h Horizon = "24h"
)

// SignalOutcome holds the per-horizon evaluation results for one SignalEvent,
// one row per event. Horizon columns stay NULL until evaluated and are never
// cleared once set.
type SignalOutcome struct {
	ID            int64         `json:"id"`
	SignalEventID int64         `gorm:"uniqueIndex;not null" json:"signal_event_id"`
	Price1hLater  *float64      `json:"price_1h_later"`
	Return1h      *float64      `gorm:"column:return_1h" json:"return_1h"`
	WasCorrect1h  *bool         `gorm:"column:was_correct_1h" json:"was_correct_1h"`
	Price4hLater  *float64      `json:"price_4h_later"`
	Return4h      *float64      `gorm:"column:return_4h" json:"return_4h"`
	WasCorrect4h  *bool         `gorm:"column:was_correct_4h" json:"was_correct_4h"`
	Price24hLater *float64      `json:"price_24h_later"`
	Return24h     *float64      `gorm:"column:return_24h" json:"return_24h"`
	WasCorrect24h *bool         `gorm:"column:was_correct_24h" json:"was_correct_24h"`
	FinalStatus   OutcomeStatus `gorm:"not null;default:incomplete" json:"final_status"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	SignalEvent   SignalEvent   `gorm:"foreignKey:SignalEventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SignalOutcome) TableName() string {
	return "signal_outcomes"
}
