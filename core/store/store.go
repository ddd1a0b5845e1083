package store

import (
	"context"
	"errors"
)

// Kind names an entity type.
type Kind string

const (
	KindRule     Kind = "Rule"
	KindBinding  Kind = "Binding"
	KindRelation Kind = "Relation"
	KindProposal Kind = "Proposal"
	KindBlock    Kind = "Block"
	KindTransfer Kind = "Transfer"
)

var (
	// ErrUnknownKind is returned when a kind has no registered factory.
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrEmptyKey is returned when an entity or lookup carries an empty key.
	ErrEmptyKey = errors.New("empty entity key")
)

// Entity is a persisted, naturally keyed record.
type Entity interface {
	// Kind returns the entity type.
	Kind() Kind
	// Key returns the natural key.
	Key() string
}

// Repository is the keyed entity store.
type Repository interface {
	// Load returns the entity stored under key, or nil if there is none.
	Load(ctx context.Context, kind Kind, key string) (Entity, error)
	// Save creates or overwrites the entity under its key.
	Save(ctx context.Context, entity Entity) error
	// Remove deletes the entity under key. Removing an absent key is a no-op.
	Remove(ctx context.Context, kind Kind, key string) error
}

func validate(kind Kind, key string) error {
	if kind == "" {
		return ErrUnknownKind
	}
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
