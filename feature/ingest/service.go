package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"specy-indexer/core/chain"
	"specy-indexer/core/feed"
	"specy-indexer/core/indexer"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"

	"go.uber.org/zap"
)

var (
	// ErrInvalidBlock is returned for a delivered block that cannot be indexed.
	ErrInvalidBlock = errors.New("invalid block")
	// ErrUnknownKind is returned when a lookup names an unregistered entity kind.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Service indexes delivered blocks and serves entity lookups.
type Service struct {
	indexer  *indexer.Indexer
	repo     store.Repository
	registry *store.Registry
	archiver *feed.Archiver
	dryRun   bool
	logger   *zap.Logger
}

// NewService creates the ingest service. archiver may be nil.
func NewService(ix *indexer.Indexer, repo store.Repository, registry *store.Registry, archiver *feed.Archiver, dryRun bool, logger *zap.Logger) *Service {
	return &Service{
		indexer:  ix,
		repo:     repo,
		registry: registry,
		archiver: archiver,
		dryRun:   dryRun,
		logger:   logger,
	}
}

// DeliveryResult describes what a delivered block did to the store.
type DeliveryResult struct {
	Height  uint64                `json:"height"`
	Hash    string                `json:"hash"`
	DryRun  bool                  `json:"dry_run"`
	Archive string                `json:"archive,omitempty"`
	Summary reconcile.PlanSummary `json:"summary"`
	Actions []reconcile.Action    `json:"actions"`
}

// Deliver indexes b and, once it is stored, archives it when an archiver is
// configured. Rejected blocks are never archived, so the archive only holds
// blocks that replay cleanly.
func (s *Service) Deliver(ctx context.Context, b chain.Block) (*DeliveryResult, error) {
	if b.Header.Hash == "" {
		return nil, fmt.Errorf("%w: header has no hash", ErrInvalidBlock)
	}

	var (
		plan *reconcile.Plan
		err  error
	)
	if s.dryRun {
		plan, err = s.indexer.PlanBlock(ctx, b)
	} else {
		plan, err = s.indexer.IndexBlock(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	result := &DeliveryResult{
		Height:  b.Header.Height,
		Hash:    b.Header.Hash,
		DryRun:  s.dryRun,
		Summary: plan.Summary,
		Actions: plan.Actions,
	}

	if s.archiver != nil && !s.dryRun {
		name, err := s.archiver.Archive(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("block %d indexed but not archived: %w", b.Header.Height, err)
		}
		result.Archive = name
	}
	return result, nil
}

// Lookup returns the entity of kind stored under key, or nil. kind matches
// registered kinds case-insensitively.
func (s *Service) Lookup(ctx context.Context, kind, key string) (store.Entity, error) {
	for _, k := range s.registry.Kinds() {
		if strings.EqualFold(string(k), kind) {
			return s.repo.Load(ctx, k, key)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
