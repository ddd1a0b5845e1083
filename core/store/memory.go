package store

import (
	"context"
	"sync"
)

// MemoryRepository keeps entities in process memory.
// Stored values are the pointers handed to Save; callers must not mutate an
// entity after saving or loading it.
type MemoryRepository struct {
	mu       sync.RWMutex
	entities map[Kind]map[string]Entity
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entities: make(map[Kind]map[string]Entity)}
}

func (m *MemoryRepository) Load(ctx context.Context, kind Kind, key string) (Entity, error) {
	if err := validate(kind, key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entities[kind][key], nil
}

func (m *MemoryRepository) Save(ctx context.Context, entity Entity) error {
	if err := validate(entity.Kind(), entity.Key()); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byKey, ok := m.entities[entity.Kind()]
	if !ok {
		byKey = make(map[string]Entity)
		m.entities[entity.Kind()] = byKey
	}
	byKey[entity.Key()] = entity
	return nil
}

func (m *MemoryRepository) Remove(ctx context.Context, kind Kind, key string) error {
	if err := validate(kind, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entities[kind], key)
	return nil
}

// Len returns the number of stored entities of kind.
func (m *MemoryRepository) Len(kind Kind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities[kind])
}

// Keys returns the stored keys of kind in no particular order.
func (m *MemoryRepository) Keys(kind Kind) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entities[kind]))
	for k := range m.entities[kind] {
		keys = append(keys, k)
	}
	return keys
}
