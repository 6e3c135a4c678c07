// Package console orchestrates one aggregation cycle: collect a
// snapshot, derive metrics, generate alerts, and compose report
// documents from the result. Each cycle is self-contained; results from
// different cycles are never merged.
package console

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/alerts"
	"github.com/de-tools/ops-atlas/pkg/collector"
	"github.com/de-tools/ops-atlas/pkg/metrics"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/reports"
)

// Cycle is the immutable outcome of one aggregation run. Reports and
// exports read only from it, never from live sources.
type Cycle struct {
	Snapshot  domain.Snapshot
	Metrics   domain.MetricSet
	Alerts    []domain.Alert
	Collected []domain.Name
}

// Aggregator runs cycles and composes reports. The HTTP handlers and
// the CLI both depend on this interface.
type Aggregator interface {
	Run(ctx context.Context, principal domain.Principal, window domain.TimeRange) (*Cycle, error)
	Report(cycle *Cycle, reportType domain.ReportType, generatedAt time.Time) (domain.ReportDocument, error)
}

type Service struct {
	collector  *collector.Collector
	calculator *metrics.Calculator
	generator  *alerts.Generator
}

func NewService(c *collector.Collector, calc *metrics.Calculator, gen *alerts.Generator) *Service {
	return &Service{collector: c, calculator: calc, generator: gen}
}

// Run executes one full aggregation cycle. Source failures are already
// normalized into the snapshot by the collector; the only error Run can
// return is context cancellation, in which case the partial cycle is
// discarded.
func (s *Service) Run(
	ctx context.Context,
	principal domain.Principal,
	window domain.TimeRange,
) (*Cycle, error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	snap := s.collector.Collect(ctx, principal, window, nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms := s.calculator.Compute(&snap)
	alertList := s.generator.Generate(*logger, &snap, ms)

	var collected []domain.Name
	for _, name := range domain.AllDomains() {
		if principal.Allowed(name) {
			collected = append(collected, name)
		}
	}

	logger.Info().
		Str("cycle_id", snap.CycleID).
		Str("user", principal.User).
		Int("alerts", len(alertList)).
		Dur("elapsed", time.Since(started)).
		Msg("aggregation cycle completed")

	return &Cycle{
		Snapshot:  snap,
		Metrics:   ms,
		Alerts:    alertList,
		Collected: collected,
	}, nil
}

// Report composes one report document from an already-completed cycle.
func (s *Service) Report(
	cycle *Cycle,
	reportType domain.ReportType,
	generatedAt time.Time,
) (domain.ReportDocument, error) {
	return reports.Compose(reportType, &cycle.Snapshot, cycle.Metrics, cycle.Alerts, generatedAt)
}
