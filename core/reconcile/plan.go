package reconcile

import (
	"context"
	"fmt"

	"specy-indexer/core/chain"
	"specy-indexer/core/store"
)

// PlanOperation decides the action for one operation event given the entity
// currently stored under key (nil if none). It performs no I/O.
func PlanOperation(adapter Adapter, op Operation, key string, existing store.Entity, ev chain.Event) (Action, error) {
	kind := adapter.Kind()

	switch op {
	case OpInsert:
		entity, err := adapter.Build(key, ev)
		if err != nil {
			return Action{}, err
		}
		return Upsert(entity, "insert"), nil

	case OpUpdate:
		if existing == nil {
			return NoOp(kind, key, "update of absent entity"), nil
		}
		entity, err := adapter.Merge(existing, ev)
		if err != nil {
			return Action{}, err
		}
		return Upsert(entity, "update"), nil

	case OpDelete:
		if existing == nil {
			return NoOp(kind, key, "delete of absent entity"), nil
		}
		return Remove(kind, key, "delete"), nil

	default:
		return NoOp(kind, key, fmt.Sprintf("unknown operation %q", op)), nil
	}
}

// Apply executes a single action against repo.
// It returns true if the store was mutated.
func Apply(ctx context.Context, repo store.Repository, action Action) (bool, error) {
	switch action.Type {
	case ActionUpsert:
		if action.Entity == nil {
			return false, fmt.Errorf("upsert of %s %q has no entity", action.Kind, action.Key)
		}
		if err := repo.Save(ctx, action.Entity); err != nil {
			return false, err
		}
		return true, nil
	case ActionRemove:
		if err := repo.Remove(ctx, action.Kind, action.Key); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// ApplyPlan executes the actions in a plan, in order.
// Returns the number of mutations executed and the first error encountered.
func ApplyPlan(ctx context.Context, repo store.Repository, plan *Plan, opts ApplyOptions) (executed int, err error) {
	if opts.DryRun {
		return 0, nil
	}
	for _, action := range plan.Actions {
		mutated, err := Apply(ctx, repo, action)
		if err != nil {
			return executed, fmt.Errorf("failed to apply %s of %s %q: %w", action.Type, action.Kind, action.Key, err)
		}
		if mutated {
			executed++
		}
	}
	return executed, nil
}
