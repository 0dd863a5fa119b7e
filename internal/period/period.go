package period

import (
	"regexp"
	"strconv"
	"time"
)

var daysRe = regexp.MustCompile(`^(\d+)d$`)

// Resolve converts a period token into the earliest UTC timestamp counted as
// inside the period.
//
//	"today"  UTC midnight of now's calendar date, shifted back by the
//	         guild's UTC offset (local midnight expressed in UTC)
//	"24h"    now minus 24 hours
//	"<n>d"   now minus n calendar days
//
// Unrecognized tokens behave like "24h".
func Resolve(token string, offsetHours int, now time.Time) time.Time {
	if token == "today" {
		utc := now.UTC()
		midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
		return midnight.Add(-time.Duration(offsetHours) * time.Hour)
	}

	if m := daysRe.FindStringSubmatch(token); m != nil {
		// A day count too large for int is an unrecognized token, not a
		// huge window
		if days, err := strconv.Atoi(m[1]); err == nil {
			return now.UTC().AddDate(0, 0, -days)
		}
	}

	// "24h" and anything unrecognized
	return now.UTC().Add(-24 * time.Hour)
}
