// Package app wires the configuration, the engine, the exporters and the
// observability sinks into a single one-shot run.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mbrivio/turni/config"
	coremetrics "github.com/mbrivio/turni/core/metrics"
	"github.com/mbrivio/turni/core/roster"
	"github.com/mbrivio/turni/infra/logger"
	"github.com/mbrivio/turni/infra/metrics"
	"github.com/mbrivio/turni/infra/notify"
	"github.com/mbrivio/turni/pkg/export"
)

// Service generates one yearly roster and writes every configured output.
type Service struct {
	cfg         *config.Config
	log         logger.Logger
	sink        coremetrics.Sink
	influx      *metrics.InfluxSink
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	var influx *metrics.InfluxSink
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics, logg)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			influx = is
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:         cfg,
		log:         logg,
		sink:        sink,
		influx:      influx,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run generates the roster for year with the given seed, writes the exports
// and pushes the run to the metrics sinks and the notifier. A zero seed is
// replaced with the current time.
func (s *Service) Run(ctx context.Context, year int, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rosterCfg, err := s.cfg.RosterConfig()
	if err != nil {
		return err
	}

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	start := time.Now()
	sched, err := roster.New(year, rosterCfg, rand.New(rand.NewSource(seed)), logger.New("roster"))
	if err != nil {
		return err
	}
	res := sched.Build()
	elapsed := time.Since(start)
	s.log.Infof("generated %d days for %d in %s (seed %d, %d decisions)",
		len(res.Assignments), year, elapsed, seed, len(res.Decisions))

	if err := s.writeExports(year, rosterCfg, res); err != nil {
		return err
	}
	s.recordMetrics(year, seed, elapsed, res)

	if s.cfg.Notify.Enabled {
		pub, err := notify.New(s.cfg.Notify, logger.New("notify"))
		if err != nil {
			return fmt.Errorf("notify: %w", err)
		}
		defer pub.Close()
		if err := pub.PublishAssignments(year, res.Assignments); err != nil {
			return err
		}
	}

	// The scrape endpoint would vanish with the process; keep serving until
	// the caller is interrupted.
	if s.promEnabled {
		s.log.Infof("run complete, serving metrics on :%s until interrupted", s.promPort)
		<-ctx.Done()
	}
	return nil
}

func (s *Service) writeExports(year int, rosterCfg roster.Config, res roster.Result) error {
	dir := s.cfg.Export.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	write := func(name string, fn func(f *os.File) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	prefix := fmt.Sprintf("turni_%d", year)
	if err := write(prefix+".csv", func(f *os.File) error {
		return export.WriteCSV(f, res.Assignments)
	}); err != nil {
		return err
	}
	if err := write(prefix+".json", func(f *os.File) error {
		return export.WriteJSON(f, res.Assignments)
	}); err != nil {
		return err
	}
	if err := write(prefix+".ics", func(f *os.File) error {
		return export.WriteICS(f, year, res.Assignments)
	}); err != nil {
		return err
	}
	if err := write(prefix+"_report.txt", func(f *os.File) error {
		return export.WriteDecisionText(f, year, res, rosterCfg.Drivers, rosterCfg.Firefighters)
	}); err != nil {
		return err
	}
	if err := write(prefix+"_decisions.jsonl", func(f *os.File) error {
		return export.WriteDecisionJSONL(f, res.Decisions)
	}); err != nil {
		return err
	}
	if err := export.WriteXLSX(filepath.Join(dir, prefix+".xlsx"), res,
		rosterCfg.Drivers, rosterCfg.Firefighters, rosterCfg.Months); err != nil {
		return err
	}
	s.log.Infof("exports written to %s", dir)
	return nil
}

func (s *Service) recordMetrics(year int, seed int64, elapsed time.Duration, res roster.Result) {
	assignments := make([]coremetrics.AssignmentRecord, 0, len(res.Assignments))
	uncovered := 0
	for _, a := range res.Assignments {
		covered := !a.Incomplete()
		if !covered {
			uncovered++
		}
		assignments = append(assignments, coremetrics.AssignmentRecord{
			Date:    a.Date,
			Driver:  a.Driver,
			Crew:    a.CrewMembers(),
			Covered: covered,
		})
	}
	relaxations := make([]coremetrics.RelaxationRecord, 0, len(res.Decisions))
	for _, e := range res.Decisions {
		relaxations = append(relaxations, coremetrics.RelaxationRecord{
			Date:     e.Date,
			Category: string(e.Category),
			Message:  e.Message,
		})
	}

	if err := s.sink.RecordAssignments(assignments); err != nil {
		s.log.Errorf("record assignments: %v", err)
	}
	if err := s.sink.RecordRelaxations(relaxations); err != nil {
		s.log.Errorf("record relaxations: %v", err)
	}
	if err := s.sink.RecordRunSummary(coremetrics.RunSummary{
		Year:        year,
		Days:        len(res.Assignments),
		Uncovered:   uncovered,
		Relaxations: len(res.Decisions),
		Seed:        seed,
		Duration:    elapsed,
	}); err != nil {
		s.log.Errorf("record run summary: %v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.influx != nil {
		s.influx.Close()
	}
	return nil
}
