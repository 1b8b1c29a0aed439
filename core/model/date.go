package model

import "time"

// Weekday is a Monday-based day of week (0=Monday .. 6=Sunday), matching the
// convention used throughout the configuration surface.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "???"
	}
	return weekdayNames[w]
}

// Valid reports whether w is within the Monday..Sunday range.
func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

// WeekdayOf converts a time.Time into the Monday-based weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// WeekKey identifies an ISO-8601 calendar week. It is the accounting unit for
// weekly caps.
type WeekKey struct {
	Year int
	Week int
}

// WeekKeyOf returns the ISO week the date belongs to.
func WeekKeyOf(t time.Time) WeekKey {
	y, w := t.ISOWeek()
	return WeekKey{Year: y, Week: w}
}

// Before orders week keys chronologically.
func (k WeekKey) Before(o WeekKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Week < o.Week
}

// Date builds a normalized UTC-midnight date. The engine treats dates as
// opaque calendar days; all of them are created through this helper so map
// lookups on time.Time stay reliable.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Vacation is an inclusive date range during which a person is unavailable
// for every role.
type Vacation struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls inside the vacation range.
func (v Vacation) Contains(day time.Time) bool {
	return !day.Before(v.Start) && !day.After(v.End)
}
