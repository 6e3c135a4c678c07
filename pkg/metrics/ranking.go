package metrics

import (
	"sort"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// accumulator groups values by key while remembering the order keys were
// first seen, so rankings are deterministic regardless of how ties fall.
type accumulator struct {
	index   map[string]int
	entries []domain.RankedEntry
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

func (a *accumulator) add(key, label string, value float64) {
	if key == "" {
		return
	}
	if i, ok := a.index[key]; ok {
		a.entries[i].Value += value
		return
	}
	a.index[key] = len(a.entries)
	a.entries = append(a.entries, domain.RankedEntry{Key: key, Label: label, Value: value})
}

// top returns the n highest entries, descending by value. The stable
// sort preserves first-seen order among equal values.
func (a *accumulator) top(n int) []domain.RankedEntry {
	ranked := make([]domain.RankedEntry, len(a.entries))
	copy(ranked, a.entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
