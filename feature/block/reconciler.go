package block

import (
	"context"
	"errors"

	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"
	"specy-indexer/feature/block/models"

	"go.uber.org/zap"
)

// ErrEmptyHash is returned for a header without a block hash.
var ErrEmptyHash = errors.New("block header has no hash")

// Reconciler persists block headers.
type Reconciler struct {
	repo   store.Repository
	logger *zap.Logger
}

// NewReconciler creates a block reconciler over repo.
func NewReconciler(repo store.Repository, logger *zap.Logger) *Reconciler {
	return &Reconciler{repo: repo, logger: logger}
}

// Build converts a header into its entity.
func Build(header chain.BlockHeader) (*models.Block, error) {
	if header.Hash == "" {
		return nil, ErrEmptyHash
	}
	return &models.Block{
		ID:              header.Hash,
		Height:          header.Height,
		AppHash:         header.AppHash,
		DataHash:        header.DataHash,
		ProposerAddress: header.ProposerAddress,
		Timestamp:       header.Time.UnixNano(),
	}, nil
}

// Plan returns the upsert for header without touching the store.
func (r *Reconciler) Plan(header chain.BlockHeader) (reconcile.Action, error) {
	b, err := Build(header)
	if err != nil {
		return reconcile.Action{}, err
	}
	return reconcile.Upsert(b, "block"), nil
}

// HandleBlock stores header.
func (r *Reconciler) HandleBlock(ctx context.Context, header chain.BlockHeader) (reconcile.Action, error) {
	action, err := r.Plan(header)
	if err != nil {
		return reconcile.Action{}, err
	}
	if _, err := reconcile.Apply(ctx, r.repo, action); err != nil {
		return reconcile.Action{}, err
	}
	r.logger.Debug("Stored block", zap.String("hash", header.Hash), zap.Uint64("height", header.Height))
	return action, nil
}
