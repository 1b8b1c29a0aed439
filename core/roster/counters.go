package roster

import (
	"time"

	"github.com/mbrivio/turni/core/model"
)

// Counters accumulates per-person workload statistics. Six views are kept per
// person: annual total, per-month, per-month-per-weekday, per-weekday of the
// year, per-ISO-week and the weekday of the last assignment. Counters only
// ever grow; there is no removal operation.
type Counters struct {
	annual       map[string]int
	month        map[string]map[time.Month]int
	monthWeekday map[string]map[time.Month]map[model.Weekday]int
	weekday      map[string]map[model.Weekday]int
	week         map[string]map[model.WeekKey]int
	lastWeekday  map[string]model.Weekday
	hasLast      map[string]bool
}

// NewCounters returns an empty accumulator.
func NewCounters() *Counters {
	return &Counters{
		annual:       make(map[string]int),
		month:        make(map[string]map[time.Month]int),
		monthWeekday: make(map[string]map[time.Month]map[model.Weekday]int),
		weekday:      make(map[string]map[model.Weekday]int),
		week:         make(map[string]map[model.WeekKey]int),
		lastWeekday:  make(map[string]model.Weekday),
		hasLast:      make(map[string]bool),
	}
}

// Ensure idempotently initializes all accumulators for a person.
func (c *Counters) Ensure(name string) {
	if _, ok := c.annual[name]; !ok {
		c.annual[name] = 0
	}
	if _, ok := c.month[name]; !ok {
		c.month[name] = make(map[time.Month]int)
	}
	if _, ok := c.monthWeekday[name]; !ok {
		c.monthWeekday[name] = make(map[time.Month]map[model.Weekday]int)
	}
	if _, ok := c.weekday[name]; !ok {
		c.weekday[name] = make(map[model.Weekday]int)
	}
	if _, ok := c.week[name]; !ok {
		c.week[name] = make(map[model.WeekKey]int)
	}
}

// Record registers one assignment on the given date, updating all six views.
func (c *Counters) Record(name string, day time.Time) {
	c.Ensure(name)
	m := day.Month()
	dow := model.WeekdayOf(day)

	c.annual[name]++
	c.month[name][m]++
	if c.monthWeekday[name][m] == nil {
		c.monthWeekday[name][m] = make(map[model.Weekday]int)
	}
	c.monthWeekday[name][m][dow]++
	c.weekday[name][dow]++
	c.week[name][model.WeekKeyOf(day)]++
	c.lastWeekday[name] = dow
	c.hasLast[name] = true
}

// Annual returns the yearly total for a person.
func (c *Counters) Annual(name string) int {
	c.Ensure(name)
	return c.annual[name]
}

// Month returns the total for a person in the given month.
func (c *Counters) Month(name string, m time.Month) int {
	c.Ensure(name)
	return c.month[name][m]
}

// MonthWeekday returns the total for a person on a (month, weekday) pair.
func (c *Counters) MonthWeekday(name string, m time.Month, dow model.Weekday) int {
	c.Ensure(name)
	return c.monthWeekday[name][m][dow]
}

// WeekdayOfYear returns the yearly total for a person on one weekday.
func (c *Counters) WeekdayOfYear(name string, dow model.Weekday) int {
	c.Ensure(name)
	return c.weekday[name][dow]
}

// Week returns the total for a person in one ISO week.
func (c *Counters) Week(name string, key model.WeekKey) int {
	c.Ensure(name)
	return c.week[name][key]
}

// LastWeekday returns the weekday of the person's most recent assignment.
// The second return value is false if the person was never assigned.
func (c *Counters) LastWeekday(name string) (model.Weekday, bool) {
	c.Ensure(name)
	return c.lastWeekday[name], c.hasLast[name]
}
