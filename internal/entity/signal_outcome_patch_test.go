package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutcomePatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("1h horizon stays incomplete", func(t *testing.T) {
		patch := NewOutcomePatch(7, Horizon1h, 105, 5.0, true, now)

		require.NotNil(t, patch.Price1hLater)
		assert.Equal(t, 105.0, *patch.Price1hLater)
		assert.Equal(t, 5.0, *patch.Return1h)
		assert.True(t, *patch.WasCorrect1h)
		assert.Nil(t, patch.Price4hLater)
		assert.Nil(t, patch.Price24hLater)
		assert.Equal(t, OutcomeStatusIncomplete, patch.FinalStatus)
	})

	t.Run("24h horizon completes", func(t *testing.T) {
		patch := NewOutcomePatch(7, Horizon24h, 48, -4.0, true, now)

		require.NotNil(t, patch.Price24hLater)
		assert.Equal(t, -4.0, *patch.Return24h)
		assert.Nil(t, patch.Price1hLater)
		assert.Nil(t, patch.Price4hLater)
		assert.Equal(t, OutcomeStatusComplete, patch.FinalStatus)
	})
}

func TestSignalOutcomePatchApply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("applying the same patch twice is idempotent", func(t *testing.T) {
		patch := NewOutcomePatch(1, Horizon4h, 105, 5.0, true, now)

		outcome := patch.ToOutcome()
		first := *outcome
		patch.Apply(outcome)

		assert.Equal(t, first, *outcome)
		assert.Equal(t, 105.0, *outcome.Price4hLater)
		assert.Equal(t, 5.0, *outcome.Return4h)
		assert.True(t, *outcome.WasCorrect4h)
	})

	t.Run("non-null fields become the union of both writes", func(t *testing.T) {
		first := NewOutcomePatch(1, Horizon1h, 102, 2.0, true, now)
		second := NewOutcomePatch(1, Horizon24h, 95, -5.0, false, now.Add(23*time.Hour))

		outcome := first.ToOutcome()
		second.Apply(outcome)

		require.NotNil(t, outcome.Return1h)
		require.NotNil(t, outcome.Return24h)
		assert.Equal(t, 2.0, *outcome.Return1h)
		assert.Equal(t, -5.0, *outcome.Return24h)
		assert.Nil(t, outcome.Return4h)
		assert.Equal(t, OutcomeStatusComplete, outcome.FinalStatus)
	})

	t.Run("a recorded horizon is never overwritten or cleared", func(t *testing.T) {
		original := NewOutcomePatch(1, Horizon4h, 110, 10.0, true, now)
		outcome := original.ToOutcome()

		conflicting := NewOutcomePatch(1, Horizon4h, 90, -10.0, false, now.Add(time.Minute))
		conflicting.Apply(outcome)

		assert.Equal(t, 110.0, *outcome.Price4hLater)
		assert.Equal(t, 10.0, *outcome.Return4h)
		assert.True(t, *outcome.WasCorrect4h)
	})

	t.Run("final status and updated_at always follow the patch", func(t *testing.T) {
		outcome := NewOutcomePatch(1, Horizon1h, 102, 2.0, true, now).ToOutcome()

		later := now.Add(23 * time.Hour)
		NewOutcomePatch(1, Horizon24h, 101, 1.0, true, later).Apply(outcome)

		assert.Equal(t, OutcomeStatusComplete, outcome.FinalStatus)
		assert.Equal(t, later, outcome.UpdatedAt)
	})
}
