package utils

import "time"

// TimeNowUTC returns the current time in UTC. Signal timestamps and horizon
// math are all UTC to keep age comparisons timezone-independent.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDay truncates t to midnight of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
