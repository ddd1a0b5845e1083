package transfer

import (
	"context"

	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"

	"go.uber.org/zap"
)

// Aggregator applies Reconcile against a repository.
type Aggregator struct {
	repo      store.Repository
	logger    *zap.Logger
	eventKind string
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithEventKind changes the qualifying event type.
func WithEventKind(kind string) Option {
	return func(a *Aggregator) {
		if kind != "" {
			a.eventKind = kind
		}
	}
}

// NewAggregator creates an aggregator over repo.
func NewAggregator(repo store.Repository, logger *zap.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{repo: repo, logger: logger, eventKind: DefaultEventKind}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EventKind returns the qualifying event type.
func (a *Aggregator) EventKind() string {
	return a.eventKind
}

// Plan loads the stored transfer for tx and returns the action to take.
func (a *Aggregator) Plan(ctx context.Context, tx chain.Transaction) (reconcile.Action, error) {
	if tx.Hash == "" {
		return reconcile.Action{}, ErrEmptyHash
	}
	existing, err := a.repo.Load(ctx, store.KindTransfer, tx.Hash)
	if err != nil {
		return reconcile.Action{}, err
	}
	return Reconcile(tx, existing, a.eventKind)
}

// HandleTransaction reconciles and applies tx.
func (a *Aggregator) HandleTransaction(ctx context.Context, tx chain.Transaction) (reconcile.Action, error) {
	action, err := a.Plan(ctx, tx)
	if err != nil {
		return reconcile.Action{}, err
	}
	if _, err := reconcile.Apply(ctx, a.repo, action); err != nil {
		return reconcile.Action{}, err
	}

	switch action.Type {
	case reconcile.ActionRemove:
		a.logger.Info("Retracted transfer", zap.String("tx", tx.Hash), zap.String("reason", action.Reason))
	case reconcile.ActionUpsert:
		a.logger.Info("Recorded transfer", zap.String("tx", tx.Hash))
	default:
		a.logger.Debug("Transfer unchanged", zap.String("tx", tx.Hash), zap.String("reason", action.Reason))
	}
	return action, nil
}
