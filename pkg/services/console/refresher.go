package console

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// Refresher triggers aggregation cycles on a fixed interval and hands
// each completed cycle to the consumer callback. Cycles are independent:
// a slow cycle never has its partial results merged into the next one,
// the consumer always sees whole cycles in completion order.
type Refresher struct {
	aggregator Aggregator
	principal  domain.Principal
	interval   time.Duration
	windowLen  time.Duration
}

func NewRefresher(aggregator Aggregator, principal domain.Principal, interval, windowLen time.Duration) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if windowLen <= 0 {
		windowLen = 30 * 24 * time.Hour
	}
	return &Refresher{
		aggregator: aggregator,
		principal:  principal,
		interval:   interval,
		windowLen:  windowLen,
	}
}

// Run blocks until ctx is cancelled, invoking consume with each
// completed cycle. A cancelled in-flight cycle is dropped, not
// delivered.
func (r *Refresher) Run(ctx context.Context, consume func(*Cycle)) {
	logger := zerolog.Ctx(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			window := domain.TimeRange{From: now.UTC().Add(-r.windowLen), To: now.UTC()}
			cycle, err := r.aggregator.Run(ctx, r.principal, window)
			if err != nil {
				logger.Warn().Err(err).Msg("refresh cycle abandoned")
				continue
			}
			consume(cycle)
		}
	}
}
