package reconcile

import (
	"context"
	"fmt"

	"specy-indexer/core/chain"
	"specy-indexer/core/store"

	"go.uber.org/zap"
)

// OperationReconciler applies operation events for one entity type.
type OperationReconciler struct {
	adapter    Adapter
	repo       store.Repository
	logger     *zap.Logger
	insertOnly bool
}

// Option configures an OperationReconciler.
type Option func(*OperationReconciler)

// InsertOnly makes the reconciler treat every event as an insert,
// ignoring operation_type.
func InsertOnly() Option {
	return func(r *OperationReconciler) {
		r.insertOnly = true
	}
}

// NewOperationReconciler creates a reconciler for adapter's entity type.
func NewOperationReconciler(adapter Adapter, repo store.Repository, logger *zap.Logger, opts ...Option) *OperationReconciler {
	r := &OperationReconciler{
		adapter: adapter,
		repo:    repo,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the adapter name.
func (r *OperationReconciler) Name() string {
	return r.adapter.Name()
}

// Kind returns the entity type reconciled.
func (r *OperationReconciler) Kind() store.Kind {
	return r.adapter.Kind()
}

// Plan reads the stored state needed for ev and returns the planned action.
func (r *OperationReconciler) Plan(ctx context.Context, ev chain.Event) (Action, error) {
	op := OpInsert
	if !r.insertOnly {
		raw := ev.Value(chain.AttrOperationType)
		parsed, ok := ParseOperation(raw)
		if !ok {
			return NoOp(r.adapter.Kind(), "", fmt.Sprintf("unknown operation %q", raw)), nil
		}
		op = parsed
	}

	key, err := r.adapter.ExtractKey(ev)
	if err != nil {
		return Action{}, err
	}

	var existing store.Entity
	if op != OpInsert {
		existing, err = r.repo.Load(ctx, r.adapter.Kind(), key)
		if err != nil {
			return Action{}, err
		}
	}

	return PlanOperation(r.adapter, op, key, existing, ev)
}

// Handle plans and applies ev. The returned action describes what was done.
func (r *OperationReconciler) Handle(ctx context.Context, ev chain.Event) (Action, error) {
	action, err := r.Plan(ctx, ev)
	if err != nil {
		return Action{}, err
	}

	if _, err := Apply(ctx, r.repo, action); err != nil {
		return Action{}, err
	}

	r.logger.Debug("Reconciled event",
		zap.String("adapter", r.adapter.Name()),
		zap.String("action", string(action.Type)),
		zap.String("key", action.Key),
		zap.String("reason", action.Reason),
	)
	return action, nil
}
