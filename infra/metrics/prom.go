package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/mbrivio/turni/core/metrics"
)

// PromSink records roster runs as Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	gaps        prometheus.Counter
	relaxations *prometheus.CounterVec
	shifts      prometheus.Gauge
}

// NewPromSink registers the roster metrics on the provided registerer. If reg
// is nil the default registerer is used; already-registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_assignments_total",
		Help: "Total number of person-assignments produced",
	}, []string{"role"})
	gaps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_coverage_gaps_total",
		Help: "Days with at least one uncovered slot",
	})
	relaxations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_relaxations_total",
		Help: "Constraint relaxations applied during generation",
	}, []string{"category"})
	shifts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_run_days",
		Help: "Number of days in the last generation run",
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(gaps); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			gaps = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(relaxations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			relaxations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(shifts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			shifts = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	return &PromSink{assignments: assignments, gaps: gaps, relaxations: relaxations, shifts: shifts}, nil
}

// RecordAssignments increments the per-role counters.
func (s *PromSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	for _, r := range recs {
		if r.Driver != "" {
			s.assignments.WithLabelValues("driver").Inc()
		}
		s.assignments.WithLabelValues("crew").Add(float64(len(r.Crew)))
		if !r.Covered {
			s.gaps.Inc()
		}
	}
	return nil
}

// RecordRelaxations increments the per-category relaxation counter.
func (s *PromSink) RecordRelaxations(recs []coremetrics.RelaxationRecord) error {
	for _, r := range recs {
		s.relaxations.WithLabelValues(r.Category).Inc()
	}
	return nil
}

// RecordRunSummary sets the run-level gauge.
func (s *PromSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	s.shifts.Set(float64(sum.Days))
	return nil
}
