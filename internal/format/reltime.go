// Package format renders timestamps the way the note cards show them:
// humanized relative to today, falling back to an absolute date after a year.
package format

import (
	"fmt"
	"time"
)

// Relative humanizes t against now. Comparisons work on calendar days in
// now's location, so 23:59 yesterday is still "Yesterday".
func Relative(t, now time.Time) string {
	day := func(x time.Time) time.Time {
		x = x.In(now.Location())
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, now.Location())
	}
	days := int(day(now).Sub(day(t)).Hours() / 24)

	switch {
	case days < 0:
		return "in the future"
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}

	if weeks := days / 7; weeks < 5 {
		if weeks == 1 {
			return "a week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}

	if months := days / 30; months < 12 {
		if months == 1 {
			return "a month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}

	if days/365 == 1 {
		return "a year ago"
	}
	return t.Format("January 2, 2006")
}
