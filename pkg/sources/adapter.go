package sources

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// ErrUnavailable marks a domain fetch failure. The collector absorbs it
// into the snapshot's per-domain ok flag; it never crosses the collector
// boundary.
var ErrUnavailable = errors.New("domain source unavailable")

// Adapter normalizes one operational domain's records into their
// canonical shape. Fetch writes only the adapter's own snapshot slot, so
// concurrent fetches for different domains need no locking. A transport
// or decode failure is returned as an error wrapping ErrUnavailable; the
// adapter never panics and never writes a partial slot on failure.
type Adapter interface {
	Domain() domain.Name
	Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error
}

func unavailable(name domain.Name, err error) error {
	return fmt.Errorf("%s: %w: %v", name, ErrUnavailable, err)
}

// Registry holds the adapter for each domain.
type Registry struct {
	mu       sync.RWMutex
	adapters map[domain.Name]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[domain.Name]Adapter)}
}

func (r *Registry) Register(adapter Adapter) error {
	if adapter == nil {
		return fmt.Errorf("adapter cannot be nil")
	}
	name := adapter.Domain()
	if name == "" {
		return fmt.Errorf("adapter domain cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("domain %q is already registered", name)
	}
	r.adapters[name] = adapter
	return nil
}

func (r *Registry) Get(name domain.Name) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[name]
	return adapter, ok
}

// Domains returns the registered domains in the canonical order.
func (r *Registry) Domains() []domain.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]domain.Name, 0, len(r.adapters))
	for _, name := range domain.AllDomains() {
		if _, ok := r.adapters[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
