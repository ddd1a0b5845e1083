package reconcile

import (
	"specy-indexer/core/chain"
	"specy-indexer/core/store"
)

// Adapter defines the entity-specific part of operation reconciliation.
// Each adapter knows how to derive a key and entity values for one entity type
// (e.g. rules, bindings, relations) from an event's attributes.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g. "rule", "binding").
	Name() string

	// Kind returns the entity type this adapter produces.
	Kind() store.Kind

	// ExtractKey returns the natural key carried by the event.
	// A missing or empty key attribute must be reported as an *AttributeError.
	ExtractKey(ev chain.Event) (string, error)

	// Build constructs a complete entity for an insert. List-valued fields are
	// derived in full from the event.
	Build(key string, ev chain.Event) (store.Entity, error)

	// Merge returns a copy of existing with the fields carried by the event
	// replaced. The key and unrelated fields are preserved; existing itself must
	// not be modified.
	Merge(existing store.Entity, ev chain.Event) (store.Entity, error)
}
