package entity

import "time"

// SignalOutcomePatch is a partial outcome for one horizon. Nil fields leave
// the stored column untouched, so applying the same patch twice is a no-op
// beyond the status/timestamp overwrite.
type SignalOutcomePatch struct {
	SignalEventID int64
	Price1hLater  *float64
	Return1h      *float64
	WasCorrect1h  *bool
	Price4hLater  *float64
	Return4h      *float64
	WasCorrect4h  *bool
	Price24hLater *float64
	Return24h     *float64
	WasCorrect24h *bool
	FinalStatus   OutcomeStatus
	EvaluatedAt   time.Time
}

// NewOutcomePatch builds a patch carrying the result of one horizon
// evaluation. FinalStatus becomes complete only for the 24h horizon.
func NewOutcomePatch(signalEventID int64, horizon Horizon, price, returnPct float64, wasCorrect bool, evaluatedAt time.Time) SignalOutcomePatch {
	patch := SignalOutcomePatch{
		SignalEventID: signalEventID,
		FinalStatus:   OutcomeStatusIncomplete,
		EvaluatedAt:   evaluatedAt,
	}

	switch horizon {
	case Horizon1h:
		patch.Price1hLater = &price
		patch.Return1h = &returnPct
		patch.WasCorrect1h = &wasCorrect
	case Horizon4h:
		patch.Price4hLater = &price
		patch.Return4h = &returnPct
		patch.WasCorrect4h = &wasCorrect
	case Horizon24h:
		patch.Price24hLater = &price
		patch.Return24h = &returnPct
		patch.WasCorrect24h = &wasCorrect
		patch.FinalStatus = OutcomeStatusComplete
	}

	return patch
}

// Apply merges the patch into an existing outcome row. Horizon columns are
// written only where the patch is non-nil and the stored value is still NULL;
// a value that has been recorded once is never overwritten or cleared.
// FinalStatus and UpdatedAt are always taken from the patch.
func (p SignalOutcomePatch) Apply(outcome *SignalOutcome) {
	setFloat := func(dst **float64, src *float64) {
		if src != nil && *dst == nil {
			v := *src
			*dst = &v
		}
	}
	setBool := func(dst **bool, src *bool) {
		if src != nil && *dst == nil {
			v := *src
			*dst = &v
		}
	}

	setFloat(&outcome.Price1hLater, p.Price1hLater)
	setFloat(&outcome.Return1h, p.Return1h)
	setBool(&outcome.WasCorrect1h, p.WasCorrect1h)
	setFloat(&outcome.Price4hLater, p.Price4hLater)
	setFloat(&outcome.Return4h, p.Return4h)
	setBool(&outcome.WasCorrect4h, p.WasCorrect4h)
	setFloat(&outcome.Price24hLater, p.Price24hLater)
	setFloat(&outcome.Return24h, p.Return24h)
	setBool(&outcome.WasCorrect24h, p.WasCorrect24h)

	outcome.FinalStatus = p.FinalStatus
	outcome.UpdatedAt = p.EvaluatedAt
}

// ToOutcome materializes a fresh outcome row from the patch, for the insert
// path when no row exists yet.
func (p SignalOutcomePatch) ToOutcome() *SignalOutcome {
	outcome := &SignalOutcome{
		SignalEventID: p.SignalEventID,
		FinalStatus:   p.FinalStatus,
		UpdatedAt:     p.EvaluatedAt,
	}
	p.Apply(outcome)
	return outcome
}
