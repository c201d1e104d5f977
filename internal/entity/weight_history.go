package entity

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SignalWeights is the typed form of one per-factor weight snapshot. It is
// serialized as an opaque JSON blob in weight_history and decoded only at
// this boundary.
type SignalWeights struct {
	Momentum   float64 `json:"momentum"`
	RSI        float64 `json:"rsi"`
	Sentiment  float64 `json:"sentiment"`
	Volume     float64 `json:"volume"`
	Volatility float64 `json:"volatility"`
}

// WeightHistory is an append-only, versioned record of the factor weights in
// force, together with the evidence that produced them. Version increases
// monotonically; rows are never updated.
type WeightHistory struct {
	ID                    int64          `json:"id"`
	Version               int            `gorm:"uniqueIndex;not null" json:"version"`
	Weights               datatypes.JSON `gorm:"type:jsonb;not null" json:"weights"`
	SignalCount           int            `gorm:"not null" json:"signal_count"`
	ExpectedAccuracyDelta float64        `json:"expected_accuracy_delta"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (WeightHistory) TableName() string {
	return "weight_history"
}

// DecodeWeights unmarshals the stored blob into its typed form.
func (w *WeightHistory) DecodeWeights() (SignalWeights, error) {
	var weights SignalWeights
	err := json.Unmarshal(w.Weights, &weights)
	return weights, err
}

// EncodeWeights marshals typed weights into the stored blob form.
func EncodeWeights(weights SignalWeights) (datatypes.JSON, error) {
	raw, err := json.Marshal(weights)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
