package collector

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/sources"
)

// Timeouts holds the per-domain fetch deadline. A domain without an
// entry uses Default. Timeouts are per adapter, never global, so one
// slow domain degrades only its own metrics.
type Timeouts struct {
	Default   time.Duration
	PerDomain map[domain.Name]time.Duration
}

func (t Timeouts) For(name domain.Name) time.Duration {
	if d, ok := t.PerDomain[name]; ok && d > 0 {
		return d
	}
	if t.Default > 0 {
		return t.Default
	}
	return 10 * time.Second
}

// Collector fans out to all registered domain adapters concurrently and
// merges their results into one immutable snapshot. Individual adapter
// failure is absorbed into the snapshot's per-domain ok flag and logged;
// it never aborts the cycle, so total collection latency tracks the
// slowest adapter rather than the sum of all of them.
type Collector struct {
	registry *sources.Registry
	timeouts Timeouts
}

func New(registry *sources.Registry, timeouts Timeouts) *Collector {
	return &Collector{registry: registry, timeouts: timeouts}
}

// Collect builds the snapshot for one aggregation cycle. Only domains
// the principal may read are fetched; everything else stays at its
// zero value (ok=false, no records). Cancelling ctx cancels every
// in-flight fetch; the caller must then discard the snapshot rather
// than merge it into a later cycle.
func (c *Collector) Collect(
	ctx context.Context,
	principal domain.Principal,
	window domain.TimeRange,
	requested []domain.Name,
) domain.Snapshot {
	logger := zerolog.Ctx(ctx)

	snap := domain.Snapshot{
		CycleID: uuid.NewString(),
		Window:  window,
		TakenAt: time.Now().UTC(),
	}

	if len(requested) == 0 {
		requested = c.registry.Domains()
	}

	var wg sync.WaitGroup
	for _, name := range requested {
		if !principal.Allowed(name) {
			continue
		}
		adapter, ok := c.registry.Get(name)
		if !ok {
			logger.Warn().Str("domain", string(name)).Msg("no adapter registered for domain")
			continue
		}

		wg.Add(1)
		go func(name domain.Name, adapter sources.Adapter) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, c.timeouts.For(name))
			defer cancel()

			started := time.Now()
			if err := adapter.Fetch(fetchCtx, window, &snap); err != nil {
				snap.MarkFailed(name)
				logger.Warn().
					Err(err).
					Str("domain", string(name)).
					Dur("elapsed", time.Since(started)).
					Msg("domain fetch failed")
				return
			}

			logger.Debug().
				Str("domain", string(name)).
				Int("records", snap.Count(name)).
				Dur("elapsed", time.Since(started)).
				Msg("domain fetch completed")
		}(name, adapter)
	}
	wg.Wait()

	return snap
}
