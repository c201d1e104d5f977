package telegram

import (
	"fmt"
	"strings"
	"time"
)

// RunSummary carries the counters of one outcome-tracking tick.
type RunSummary struct {
	Processed  int
	Completed  int
	Errors     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// FormatRunSummaryForTelegram formats a tracking-run summary into a Markdown
// message for Telegram.
func FormatRunSummaryForTelegram(summary RunSummary) string {
	var b strings.Builder

	b.WriteString("📊 *Signal Outcome Tracking*\n\n")
	b.WriteString(fmt.Sprintf("✅ Processed: %d\n", summary.Processed))
	b.WriteString(fmt.Sprintf("🏁 Completed (24h): %d\n", summary.Completed))

	if summary.Errors > 0 {
		b.WriteString(fmt.Sprintf("⚠️ Errors: %d\n", summary.Errors))
	} else {
		b.WriteString("⚠️ Errors: 0\n")
	}

	duration := summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond)
	b.WriteString(fmt.Sprintf("\n⏱ Duration: %s\n", duration))
	b.WriteString(fmt.Sprintf("🕐 %s", summary.FinishedAt.Format("2006-01-02 15:04:05 MST")))

	return b.String()
}
