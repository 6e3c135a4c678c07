package alerts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// Generator produces the alert list for a cycle using one of two
// strategies with a single switchover rule: if the remote notifications
// feed was collected successfully, its entries are the alert list;
// otherwise the local rule table is evaluated against the snapshot and
// metrics. The two sources are never mixed, so the dashboard can never
// double-count an alert.
type Generator struct {
	engine *Engine
}

func NewGenerator(engine *Engine) *Generator {
	return &Generator{engine: engine}
}

func (g *Generator) Generate(logger zerolog.Logger, snap *domain.Snapshot, ms domain.MetricSet) []domain.Alert {
	var alerts []domain.Alert
	if snap.Notifications.OK {
		alerts = fromFeed(snap)
	} else {
		logger.Info().
			Str("cycle_id", snap.CycleID).
			Msg("notifications feed unavailable, falling back to local rule evaluation")
		alerts = g.engine.Evaluate(logger, snap, ms)
	}

	// Priority descending; the stable sort keeps generation order
	// within the same priority.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.Rank() > alerts[j].Priority.Rank()
	})
	return alerts
}

func fromFeed(snap *domain.Snapshot) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(snap.Notifications.Items))
	for i, n := range snap.Notifications.Items {
		id := n.ID
		if id == "" {
			id = fmt.Sprintf("%s/feed-%d", snap.CycleID, i)
		}
		alerts = append(alerts, domain.Alert{
			ID:       id,
			Type:     n.Type,
			Priority: normalizePriority(n.Priority),
			Message:  n.Message,
			Domain:   domain.Name(n.Domain),
			Source:   domain.AlertSourceRemote,
		})
	}
	return alerts
}

func normalizePriority(s string) domain.Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "high", "urgent":
		return domain.PriorityCritical
	case "warning", "medium", "warn":
		return domain.PriorityWarning
	default:
		return domain.PriorityInfo
	}
}
