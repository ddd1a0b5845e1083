package reconcile

import (
	"errors"
	"fmt"

	"specy-indexer/core/chain"
)

var (
	// ErrMissingAttribute marks a required attribute that is absent or empty.
	ErrMissingAttribute = errors.New("missing required attribute")
	// ErrMalformedAttribute marks an attribute whose value cannot be parsed.
	ErrMalformedAttribute = errors.New("malformed attribute")
)

// AttributeError reports a problem with one attribute of one event.
type AttributeError struct {
	EventType string
	Attribute string
	Value     string
	Err       error
}

func (e *AttributeError) Error() string {
	if errors.Is(e.Err, ErrMissingAttribute) {
		return fmt.Sprintf("event %q: %s: %v", e.EventType, e.Attribute, e.Err)
	}
	return fmt.Sprintf("event %q: %s=%q: %v", e.EventType, e.Attribute, e.Value, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}

// Missing builds an AttributeError for an absent attribute.
func Missing(ev chain.Event, name string) *AttributeError {
	return &AttributeError{EventType: ev.Type, Attribute: name, Err: ErrMissingAttribute}
}

// Malformed builds an AttributeError for an unparseable attribute.
func Malformed(ev chain.Event, name, value string, cause error) *AttributeError {
	return &AttributeError{
		EventType: ev.Type,
		Attribute: name,
		Value:     value,
		Err:       fmt.Errorf("%w: %w", ErrMalformedAttribute, cause),
	}
}

// Require returns the attribute value, failing when the attribute is absent.
// Present but empty values are accepted.
func Require(ev chain.Event, name string) (string, error) {
	v, ok := ev.Get(name)
	if !ok {
		return "", Missing(ev, name)
	}
	return v, nil
}

// RequireKey returns a non-empty attribute value suitable as a natural key.
func RequireKey(ev chain.Event, name string) (string, error) {
	v, ok := ev.Get(name)
	if !ok || v == "" {
		return "", Missing(ev, name)
	}
	return v, nil
}
