package roster

import (
	"time"

	"github.com/mbrivio/turni/core/model"
)

type driverCandidate struct {
	name  string
	atCap bool
	key   [7]float64
}

// pickDriver resolves the driver for one date, records the choice into the
// driver counters and returns the chosen name, or "" if nobody is eligible.
func (s *Scheduler) pickDriver(day time.Time, excluded map[string]bool) string {
	month := day.Month()
	dow := model.WeekdayOf(day)
	week := model.WeekKeyOf(day)

	var candidates []driverCandidate
	for _, name := range s.drivers {
		if excluded[name] {
			continue
		}
		if s.onVacation(name, day) {
			continue
		}
		atCap := s.capReached(s.driverCount, name, day)
		if atCap && s.rules.WeeklyCap.Mode == RuleHard {
			continue
		}
		candidates = append(candidates, driverCandidate{name: name, atCap: atCap})
	}
	if len(candidates) == 0 {
		s.decisions.Logf(day, CategoryDriver, "no driver available within constraints and weekly caps")
		return ""
	}

	// Prefer drivers who never served on this (month, weekday) yet.
	pool := candidates[:0:0]
	for _, c := range candidates {
		if s.driverCount.MonthWeekday(c.name, month, dow) < 1 {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = candidates
		s.decisions.Logf(day, CategoryDriver, "relaxing the one-shift-per-month/weekday rule for drivers to cover the day")
	}

	for i := range pool {
		c := &pool[i]
		c.key[0] = boolToFloat(c.atCap)
		c.key[1] = float64(s.driverCount.Week(c.name, week))
		c.key[2] = float64(s.driverCount.Month(c.name, month))
		c.key[3] = float64(s.driverCount.Annual(c.name))
		c.key[4] = float64(s.driverCount.WeekdayOfYear(c.name, dow))
		if last, ok := s.driverCount.LastWeekday(c.name); ok && last == dow {
			c.key[5] = 1
		}
		c.key[6] = s.rng.Float64()
	}

	best := pool[0]
	for _, c := range pool[1:] {
		if lessKey(c.key[:], best.key[:]) {
			best = c
		}
	}

	if best.atCap && s.rules.WeeklyCap.Mode == RuleSoft {
		s.decisions.Logf(day, CategoryDriver, "weekly cap waived: assigning %s beyond their cap", best.name)
	}
	s.driverCount.Record(best.name, day)
	return best.name
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// lessKey compares two score tuples lexicographically.
func lessKey(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
