package engine

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk format of the last-seen date.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Today returns now's calendar date as local midnight.
func Today(now time.Time) time.Time {
	return midnight(now)
}

func midnight(t time.Time) time.Time {
	t = t.In(time.Local)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t's local calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// DaysBetween returns the signed number of whole days from a to b.
//
// Both dates are taken at local midnight and the difference in seconds is
// divided by 86400, truncating toward zero. Across a DST change a calendar day
// is not 86400s long, so a span that includes a 23h day can come out one short.
// That is the defined behaviour.
func DaysBetween(a, b time.Time) int {
	diff := midnight(b).Unix() - midnight(a).Unix()
	return int(diff / secondsPerDay)
}
