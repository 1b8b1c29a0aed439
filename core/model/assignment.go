package model

import "time"

// TeamSize is the number of crew slots per shift.
const TeamSize = 4

// Assignment is the outcome for one calendar date: a driver and up to four
// crew members. Empty strings denote uncovered slots. The displayed driver
// may differ from the driver the counters attribute the shift to; see the
// special rotation rule.
type Assignment struct {
	Date   time.Time
	Driver string
	Crew   [TeamSize]string
}

// Incomplete reports whether any slot of the shift is uncovered.
func (a Assignment) Incomplete() bool {
	if a.Driver == "" {
		return true
	}
	for _, m := range a.Crew {
		if m == "" {
			return true
		}
	}
	return false
}

// CrewMembers returns the filled crew slots in order.
func (a Assignment) CrewMembers() []string {
	out := make([]string, 0, TeamSize)
	for _, m := range a.Crew {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
