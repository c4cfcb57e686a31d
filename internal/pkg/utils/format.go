package utils

import (
	"fmt"
	"time"
)

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
	month  = 30 * day
	year   = 365 * day
)

// FormatDuration renders a duration as a compact trading-style label:
// "45s", "3m", "7h", "12d", "3w", "5mo", "2y 3mo".
func FormatDuration(d time.Duration) string {
	seconds := int64(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < minute:
		return fmt.Sprintf("%ds", seconds)
	case seconds < hour:
		return fmt.Sprintf("%dm", seconds/minute)
	case seconds < day:
		return fmt.Sprintf("%dh", seconds/hour)
	case seconds < week:
		return fmt.Sprintf("%dd", seconds/day)
	case seconds < month:
		return fmt.Sprintf("%dw", seconds/week)
	case seconds < year:
		return fmt.Sprintf("%dmo", seconds/month)
	default:
		years := seconds / year
		remMonths := (seconds % year) / month
		if remMonths > 0 {
			return fmt.Sprintf("%dy %dmo", years, remMonths)
		}
		return fmt.Sprintf("%dy", years)
	}
}

// FormatTimeAgo renders how long ago ts occurred, e.g. "3h ago".
func FormatTimeAgo(ts, now time.Time) string {
	return FormatDuration(now.Sub(ts)) + " ago"
}

// AgeDescriptor renders a token age as a compact label plus a relative
// maturity bucket, e.g. "12d (Recent)".
func AgeDescriptor(age time.Duration) string {
	label := FormatDuration(age)
	seconds := int64(age.Seconds())
	switch {
	case seconds < day:
		return label + " (Very New)"
	case seconds < week:
		return label + " (New)"
	case seconds < month:
		return label + " (Recent)"
	case seconds < year:
		return label + " (Established)"
	default:
		return label + " (Long-established)"
	}
}
