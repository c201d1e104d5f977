package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SignalStatus is the lifecycle state of a SignalEvent.
type SignalStatus string

const (
	SignalStatusPending   SignalStatus = "pending"
	SignalStatusCompleted SignalStatus = "completed"
)

// AssetClass determines which market-data provider prices a symbol.
type AssetClass string

const (
	AssetClassCrypto AssetClass = "crypto"
	AssetClassStock  AssetClass = "stock"
	AssetClassForex  AssetClass = "forex"
)

// SignalDirection is the trading call carried by a signal.
type SignalDirection string

const (
	DirectionBuy        SignalDirection = "BUY"
	DirectionStrongBuy  SignalDirection = "STRONG_BUY"
	DirectionSell       SignalDirection = "SELL"
	DirectionStrongSell SignalDirection = "STRONG_SELL"
	DirectionNeutral    SignalDirection = "NEUTRAL"
)

// IsBuy reports whether the direction expects the price to rise.
func (d SignalDirection) IsBuy() bool {
	return d == DirectionBuy || d == DirectionStrongBuy
}

// IsSell reports whether the direction expects the price to fall.
func (d SignalDirection) IsSell() bool {
	return d == DirectionSell || d == DirectionStrongSell
}

// SignalEvent is one emitted trading signal. Rows are created by the
// signal-emission side; the tracker only flips Status once the 24h horizon
// has been evaluated.
type SignalEvent struct {
	ID              int64           `json:"id"`
	SignalID        string          `gorm:"uniqueIndex;not null" json:"signal_id"`
	Symbol          string          `gorm:"not null" json:"symbol"`
	AssetClass      AssetClass      `gorm:"not null" json:"asset_class"`
	Direction       SignalDirection `gorm:"not null" json:"direction"`
	PriceAtSignal   float64         `gorm:"not null" json:"price_at_signal"`
	Timestamp       time.Time       `gorm:"not null;index" json:"timestamp"`
	ConfidenceScore float64         `json:"confidence_score"`
	MomentumScore   float64         `json:"momentum_score"`
	RSIScore        float64         `gorm:"column:rsi_score" json:"rsi_score"`
	SentimentScore  float64         `json:"sentiment_score"`
	VolumeScore     float64         `json:"volume_score"`
	VolatilityScore float64         `json:"volatility_score"`
	MarketContext   datatypes.JSON  `gorm:"type:jsonb" json:"market_context"`
	Status          SignalStatus    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SignalEvent) TableName() string {
	return "signal_events"
}
