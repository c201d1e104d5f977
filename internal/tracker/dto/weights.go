package dto

import "time"

// RecordWeightsRequest is the payload for appending a new weight snapshot.
type RecordWeightsRequest struct {
	Momentum              float64 `json:"momentum"`
	RSI                   float64 `json:"rsi"`
	Sentiment             float64 `json:"sentiment"`
	Volume                float64 `json:"volume"`
	Volatility            float64 `json:"volatility"`
	SignalCount           int     `json:"signal_count"`
	ExpectedAccuracyDelta float64 `json:"expected_accuracy_delta"`
}

// WeightHistoryResponse is one versioned weight snapshot as served to
// dashboards, with the blob decoded into named factors.
type WeightHistoryResponse struct {
	Version               int       `json:"version"`
	Momentum              float64   `json:"momentum"`
	RSI                   float64   `json:"rsi"`
	Sentiment             float64   `json:"sentiment"`
	Volume                float64   `json:"volume"`
	Volatility            float64   `json:"volatility"`
	SignalCount           int       `json:"signal_count"`
	ExpectedAccuracyDelta float64   `json:"expected_accuracy_delta"`
	CreatedAt             time.Time `json:"created_at"`
}
