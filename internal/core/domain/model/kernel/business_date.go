package kernel

import "time"

// BusinessDate returns midnight of the calendar day t falls on in loc.
// Daily order sequence numbers are scoped to this date, so an order placed at
// 23:30 local time belongs to that day even when UTC has already rolled over.
func BusinessDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
