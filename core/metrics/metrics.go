package metrics

import "time"

// AssignmentRecord is one scheduled day as seen by observability sinks.
type AssignmentRecord struct {
	Date    time.Time
	Driver  string
	Crew    []string
	Covered bool
}

// RelaxationRecord captures one decision log entry.
type RelaxationRecord struct {
	Date     time.Time
	Category string
	Message  string
}

// RunSummary aggregates one full generation run.
type RunSummary struct {
	Year        int
	Days        int
	Uncovered   int
	Relaxations int
	Seed        int64
	Duration    time.Duration
}

// Sink records roster runs for observability purposes. Implementations must
// tolerate being called exactly once per run, after the engine finished.
type Sink interface {
	RecordAssignments(recs []AssignmentRecord) error
	RecordRelaxations(recs []RelaxationRecord) error
	RecordRunSummary(sum RunSummary) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentRecord) error { return nil }
func (NopSink) RecordRelaxations([]RelaxationRecord) error { return nil }
func (NopSink) RecordRunSummary(RunSummary) error          { return nil }
