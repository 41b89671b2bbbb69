package model

import (
	"fmt"
	"time"
)

// RelTime renders t relative to now ("Just now", "5 min ago", "3 hours ago",
// "2 days ago", then an absolute date). It is pure: callers re-derive the
// string at render time from the stored absolute timestamp.
func RelTime(t, now time.Time) string {
	diff := now.Sub(t)

	mins := int(diff.Minutes())
	if mins < 1 {
		return "Just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%d min ago", mins)
	}

	hours := int(diff.Hours())
	if hours < 24 {
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour"))
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d %s ago", days, plural(days, "day"))
	}

	return t.Format("Jan 2, 2006")
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
