package reconcile

import (
	"specy-indexer/core/store"
)

// Operation is the mutation intent carried by an event's operation_type attribute.
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ParseOperation maps an operation_type value to an Operation.
// ok is false for values this indexer does not know.
func ParseOperation(val string) (op Operation, ok bool) {
	switch Operation(val) {
	case OpInsert, OpUpdate, OpDelete:
		return Operation(val), true
	default:
		return "", false
	}
}

// ActionType represents the type of store mutation.
type ActionType string

const (
	// ActionNoOp leaves the store untouched.
	ActionNoOp ActionType = "noop"
	// ActionUpsert creates or overwrites an entity.
	ActionUpsert ActionType = "upsert"
	// ActionRemove deletes an entity.
	ActionRemove ActionType = "remove"
)

// Action represents a planned mutation.
type Action struct {
	// Type specifies the mutation to perform.
	Type ActionType `json:"type"`

	// Kind is the entity type affected.
	Kind store.Kind `json:"kind"`

	// Key is the entity's natural key.
	Key string `json:"key"`

	// Reason explains why the action was planned.
	Reason string `json:"reason"`

	// Entity is the value to persist. Only populated for ActionUpsert.
	Entity store.Entity `json:"-"`
}

// NoOp plans no mutation.
func NoOp(kind store.Kind, key, reason string) Action {
	return Action{Type: ActionNoOp, Kind: kind, Key: key, Reason: reason}
}

// Upsert plans saving entity.
func Upsert(entity store.Entity, reason string) Action {
	return Action{
		Type:   ActionUpsert,
		Kind:   entity.Kind(),
		Key:    entity.Key(),
		Reason: reason,
		Entity: entity,
	}
}

// Remove plans deleting the entity under key.
func Remove(kind store.Kind, key, reason string) Action {
	return Action{Type: ActionRemove, Kind: kind, Key: key, Reason: reason}
}

// IsMutation reports whether applying the action changes the store.
func (a Action) IsMutation() bool {
	return a.Type == ActionUpsert || a.Type == ActionRemove
}

// Plan is an ordered list of actions with aggregate counts.
type Plan struct {
	// Actions are applied in order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Total    int `json:"total"`
	Upserts  int `json:"upserts"`
	Removals int `json:"removals"`
	NoOps    int `json:"noops"`
}

// Add appends an action and updates the summary.
func (p *Plan) Add(action Action) {
	p.Actions = append(p.Actions, action)
	p.Summary.Total++
	switch action.Type {
	case ActionUpsert:
		p.Summary.Upserts++
	case ActionRemove:
		p.Summary.Removals++
	default:
		p.Summary.NoOps++
	}
}

// ApplyOptions controls plan execution.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
