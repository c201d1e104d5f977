package service

import (
	"testing"
	"time"

	"signal-outcome-tracker/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHorizon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		age      time.Duration
		expected entity.Horizon
	}{
		{"just over an hour", time.Hour + time.Minute, entity.Horizon1h},
		{"exactly 1h", time.Hour, entity.Horizon1h},
		{"just under 4h", 4*time.Hour - time.Second, entity.Horizon1h},
		{"exactly 4h", 4 * time.Hour, entity.Horizon4h},
		{"between 4h and 24h", 12 * time.Hour, entity.Horizon4h},
		{"just under 24h", 24*time.Hour - time.Second, entity.Horizon4h},
		{"exactly 24h", 24 * time.Hour, entity.Horizon24h},
		{"days old", 72 * time.Hour, entity.Horizon24h},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyHorizon(now.Add(-tc.age), now))
		})
	}
}

func TestComputeOutcome(t *testing.T) {
	testCases := []struct {
		name            string
		direction       entity.SignalDirection
		entry           float64
		current         float64
		expectedReturn  float64
		expectedCorrect bool
	}{
		{"buy with price up", entity.DirectionBuy, 100, 105, 5.0, true},
		{"strong buy with price up", entity.DirectionStrongBuy, 100, 101, 1.0, true},
		{"buy with price down", entity.DirectionBuy, 100, 95, -5.0, false},
		{"buy with price unchanged", entity.DirectionBuy, 100, 100, 0.0, false},
		{"sell with price down", entity.DirectionSell, 50, 48, -4.0, true},
		{"strong sell with price down", entity.DirectionStrongSell, 50, 49, -2.0, true},
		{"sell with price up", entity.DirectionSell, 50, 52, 4.0, false},
		{"sell with price unchanged", entity.DirectionStrongSell, 50, 50, 0.0, false},
		{"neutral with price up", entity.DirectionNeutral, 100, 120, 20.0, true},
		{"neutral with price down", entity.DirectionNeutral, 100, 80, -20.0, true},
		{"neutral with price unchanged", entity.DirectionNeutral, 100, 100, 0.0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			returnPct, wasCorrect := ComputeOutcome(tc.direction, tc.entry, tc.current)
			assert.InDelta(t, tc.expectedReturn, returnPct, 1e-9)
			assert.Equal(t, tc.expectedCorrect, wasCorrect)
		})
	}
}
