package service

import (
	"time"

	"signal-outcome-tracker/internal/entity"
)

// ClassifyHorizon maps a signal's age to the latest horizon it qualifies
// for, evaluated top-down with inclusive boundaries. One horizon per call:
// a signal first evaluated after 24h gets its 24h outcome only, the 1h and
// 4h horizons stay unevaluated. Downstream accuracy metrics assume no
// backfill ever happens.
func ClassifyHorizon(signalTime, now time.Time) entity.Horizon {
	age := now.Sub(signalTime)

	switch {
	case age >= 24*time.Hour:
		return entity.Horizon24h
	case age >= 4*time.Hour:
		return entity.Horizon4h
	default:
		return entity.Horizon1h
	}
}

// ComputeOutcome calculates the percentage return and directional
// correctness of a signal against the current price. Correctness is a
// strict inequality: a price exactly back at entry is an incorrect call for
// directional signals. NEUTRAL carries no exposure and is always correct.
func ComputeOutcome(direction entity.SignalDirection, entryPrice, currentPrice float64) (returnPct float64, wasCorrect bool) {
	returnPct = (currentPrice - entryPrice) / entryPrice * 100

	switch {
	case direction.IsBuy():
		wasCorrect = currentPrice > entryPrice
	case direction.IsSell():
		wasCorrect = currentPrice < entryPrice
	default:
		wasCorrect = true
	}

	return returnPct, wasCorrect
}
