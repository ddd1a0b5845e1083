package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"
	"specy-indexer/feature/block"
	blockmodels "specy-indexer/feature/block/models"
	"specy-indexer/feature/governance"
	governancemodels "specy-indexer/feature/governance/models"
	"specy-indexer/feature/transfer"
	transfermodels "specy-indexer/feature/transfer/models"

	"go.uber.org/zap"
)

// EventReconciler handles one event of a routed type.
type EventReconciler interface {
	Name() string
	Handle(ctx context.Context, ev chain.Event) (reconcile.Action, error)
}

// Indexer routes delivered blocks through the reconcilers in chain order.
// Blocks are indexed one at a time: reconcilers load then save, so two
// overlapping blocks could otherwise lose each other's writes.
type Indexer struct {
	mu sync.Mutex

	repo    store.Repository
	logger  *zap.Logger
	cfg     Config
	metrics *Metrics

	blocks    *block.Reconciler
	events    map[string]EventReconciler
	transfers *transfer.Aggregator
}

// NewRegistry returns a registry holding every entity model.
func NewRegistry() *store.Registry {
	reg := store.NewRegistry()
	governancemodels.Register(reg)
	blockmodels.Register(reg)
	transfermodels.Register(reg)
	return reg
}

// New creates an indexer writing to repo. metrics may be nil.
func New(repo store.Repository, logger *zap.Logger, cfg Config, metrics *Metrics) (*Indexer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gov := governance.NewReconcilers(repo, logger)
	return &Indexer{
		repo:    repo,
		logger:  logger,
		cfg:     cfg,
		metrics: metrics,
		blocks:  block.NewReconciler(repo, logger),
		events: map[string]EventReconciler{
			cfg.RuleEvent:     gov.Rule,
			cfg.BindingEvent:  gov.Binding,
			cfg.RelationEvent: gov.Relation,
			cfg.ProposalEvent: gov.Proposal,
		},
		transfers: transfer.NewAggregator(repo, logger, transfer.WithEventKind(cfg.TransferEvent)),
	}, nil
}

// Routes returns the reconciler name for each routed event type.
func (ix *Indexer) Routes() map[string]string {
	out := make(map[string]string, len(ix.events))
	for eventType, r := range ix.events {
		out[eventType] = r.Name()
	}
	return out
}

// IndexBlock reconciles the block header, then each transaction in order:
// first its routed events, then its transfer. Processing stops at the first
// error; every step is idempotent so the caller may redeliver the whole block.
func (ix *Indexer) IndexBlock(ctx context.Context, b chain.Block) (*reconcile.Plan, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.indexBlock(ctx, b)
}

// PlanBlock runs IndexBlock against a staging overlay and returns the plan
// without touching the store.
func (ix *Indexer) PlanBlock(ctx context.Context, b chain.Block) (*reconcile.Plan, error) {
	staged, err := New(store.NewOverlay(ix.repo), ix.logger, ix.cfg, nil)
	if err != nil {
		return nil, err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	return staged.indexBlock(ctx, b)
}

func (ix *Indexer) indexBlock(ctx context.Context, b chain.Block) (*reconcile.Plan, error) {
	start := time.Now()
	b.Bind()
	plan := &reconcile.Plan{}

	action, err := ix.blocks.HandleBlock(ctx, b.Header)
	if err != nil {
		ix.metrics.observeFailure("block")
		return plan, fmt.Errorf("block %d: %w", b.Header.Height, err)
	}
	ix.record(plan, action)

	for _, tx := range b.Transactions {
		if err := ix.indexTransaction(ctx, plan, tx); err != nil {
			return plan, fmt.Errorf("block %d: %w", b.Header.Height, err)
		}
	}

	ix.metrics.observeBlock(b.Header.Height, time.Since(start).Seconds(), len(b.Transactions))
	ix.logger.Info("Indexed block",
		zap.Uint64("height", b.Header.Height),
		zap.String("hash", b.Header.Hash),
		zap.Int("transactions", len(b.Transactions)),
		zap.Int("upserts", plan.Summary.Upserts),
		zap.Int("removals", plan.Summary.Removals),
		zap.Int("noops", plan.Summary.NoOps),
	)
	return plan, nil
}

func (ix *Indexer) indexTransaction(ctx context.Context, plan *reconcile.Plan, tx chain.Transaction) error {
	for i, ev := range tx.Events {
		r, ok := ix.events[ev.Type]
		if !ok {
			continue
		}
		action, err := r.Handle(ctx, ev)
		if err != nil {
			ix.metrics.observeFailure(r.Name())
			return fmt.Errorf("tx %s event %d (%s): %w", tx.Hash, i, ev.Type, err)
		}
		ix.record(plan, action)
	}

	action, err := ix.transfers.HandleTransaction(ctx, tx)
	if err != nil {
		ix.metrics.observeFailure("transfer")
		return fmt.Errorf("tx %s transfer: %w", tx.Hash, err)
	}
	ix.record(plan, action)
	return nil
}

func (ix *Indexer) record(plan *reconcile.Plan, action reconcile.Action) {
	plan.Add(action)
	ix.metrics.observeAction(string(action.Kind), string(action.Type))
}
