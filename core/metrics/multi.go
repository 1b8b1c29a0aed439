package metrics

import "errors"

// MultiSink fans records out to several sinks, collecting their errors.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordAssignments(recs []AssignmentRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordAssignments(recs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordRelaxations(recs []RelaxationRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRelaxations(recs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordRunSummary(sum RunSummary) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRunSummary(sum); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
