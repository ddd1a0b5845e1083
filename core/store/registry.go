package store

import (
	"fmt"
	"sync"
)

// Factory returns a new zero value (pointer) of a registered entity type.
type Factory func() Entity

// Registry maps kinds to their model factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
	order     []Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind Kind, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; !exists {
		r.order = append(r.order, kind)
	}
	r.factories[kind] = factory
}

// New returns a fresh entity for kind.
func (r *Registry) New(kind Kind) (Entity, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return factory(), nil
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}

// Kinds returns registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// Models returns one zero value per registered kind, for schema migration.
func (r *Registry) Models() []any {
	kinds := r.Kinds()
	models := make([]any, 0, len(kinds))
	for _, kind := range kinds {
		e, err := r.New(kind)
		if err != nil {
			continue
		}
		models = append(models, e)
	}
	return models
}
