package roster

import (
	"fmt"
	"time"
)

// Category tags a decision log entry with the selection step it came from.
type Category string

const (
	CategoryDriver Category = "DRIVER"
	CategoryCrew   Category = "CREW"
)

// Entry is one audit record: a relaxation that was applied or a coverage
// failure. Entries are never mutated or removed.
type Entry struct {
	Date     time.Time
	Category Category
	Message  string
}

// String renders the entry the way the text report prints it.
func (e Entry) String() string {
	return fmt.Sprintf("[%s (%s)] [%s] %s", e.Date.Format("2006-01-02"), e.Date.Format("Mon"), e.Category, e.Message)
}

// DecisionLog is the append-only audit trail of a scheduling run.
type DecisionLog struct {
	entries []Entry
}

// Logf appends a formatted entry.
func (l *DecisionLog) Logf(day time.Time, cat Category, format string, args ...any) {
	l.entries = append(l.entries, Entry{Date: day, Category: cat, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of the recorded entries in append order.
func (l *DecisionLog) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *DecisionLog) Len() int { return len(l.entries) }
