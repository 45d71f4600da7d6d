package calendar

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// FormatInstantInZone converts t into the zone named by tzid and renders it as
// an ISO-8601 instant, e.g. 2011-12-03T10:15:30Z.
//
// An instant is always rendered in UTC, so the conversion does not change the
// output. The zone is still resolved and an unknown tzid is an error.
func FormatInstantInZone(t time.Time, tzid string) (string, error) {
	loc, err := time.LoadLocation(tzid)
	if err != nil {
		return "", fmt.Errorf("unknown time zone %q: %w", tzid, err)
	}
	return formatInstant(t.In(loc)), nil
}

// formatInstant prints seconds precision, then 3, 6 or 9 fraction digits when
// the fraction is non-zero.
func formatInstant(t time.Time) string {
	t = t.UTC()
	layout := "2006-01-02T15:04:05"
	nanos := t.Nanosecond()
	switch {
	case nanos == 0:
	case nanos%int(time.Millisecond) == 0:
		layout += ".000"
	case nanos%int(time.Microsecond) == 0:
		layout += ".000000"
	default:
		layout += ".000000000"
	}
	return t.Format(layout) + "Z"
}

// FormatDate renders the calendar date of t in loc as yyyy-MM-dd.
// A nil loc means time.Local.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}
