package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRunSummaryForTelegram(t *testing.T) {
	startedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	message := FormatRunSummaryForTelegram(RunSummary{
		Processed:  42,
		Completed:  7,
		Errors:     3,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(90 * time.Second),
	})

	assert.Contains(t, message, "Signal Outcome Tracking")
	assert.Contains(t, message, "Processed: 42")
	assert.Contains(t, message, "Completed (24h): 7")
	assert.Contains(t, message, "Errors: 3")
	assert.Contains(t, message, "1m30s")
}
