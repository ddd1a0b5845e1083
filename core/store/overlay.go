package store

import (
	"context"
	"sync"
)

// Overlay stages writes in memory on top of a read-only base repository.
// Loads see staged saves and removals first. The base is never written, which
// lets a dry run plan a sequence of dependent actions.
type Overlay struct {
	base Repository

	mu      sync.RWMutex
	staged  map[Kind]map[string]Entity
	removed map[Kind]map[string]bool
}

// NewOverlay creates an empty overlay over base.
func NewOverlay(base Repository) *Overlay {
	return &Overlay{
		base:    base,
		staged:  make(map[Kind]map[string]Entity),
		removed: make(map[Kind]map[string]bool),
	}
}

func (o *Overlay) Load(ctx context.Context, kind Kind, key string) (Entity, error) {
	if err := validate(kind, key); err != nil {
		return nil, err
	}
	o.mu.RLock()
	if e, ok := o.staged[kind][key]; ok {
		o.mu.RUnlock()
		return e, nil
	}
	if o.removed[kind][key] {
		o.mu.RUnlock()
		return nil, nil
	}
	o.mu.RUnlock()
	return o.base.Load(ctx, kind, key)
}

func (o *Overlay) Save(ctx context.Context, entity Entity) error {
	kind, key := entity.Kind(), entity.Key()
	if err := validate(kind, key); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.staged[kind] == nil {
		o.staged[kind] = make(map[string]Entity)
	}
	o.staged[kind][key] = entity
	delete(o.removed[kind], key)
	return nil
}

func (o *Overlay) Remove(ctx context.Context, kind Kind, key string) error {
	if err := validate(kind, key); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.staged[kind], key)
	if o.removed[kind] == nil {
		o.removed[kind] = make(map[string]bool)
	}
	o.removed[kind][key] = true
	return nil
}
