package governance

import (
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"

	"go.uber.org/zap"
)

// Reconcilers bundles one reconciler per governance entity.
type Reconcilers struct {
	Rule     *reconcile.OperationReconciler
	Binding  *reconcile.OperationReconciler
	Relation *reconcile.OperationReconciler
	Proposal *reconcile.OperationReconciler
}

// NewReconcilers creates the governance reconcilers over repo.
func NewReconcilers(repo store.Repository, logger *zap.Logger) *Reconcilers {
	return &Reconcilers{
		Rule:     reconcile.NewOperationReconciler(RuleAdapter{}, repo, logger),
		Binding:  reconcile.NewOperationReconciler(BindingAdapter{}, repo, logger),
		Relation: reconcile.NewOperationReconciler(RelationAdapter{}, repo, logger),
		Proposal: reconcile.NewOperationReconciler(ProposalAdapter{}, repo, logger, reconcile.InsertOnly()),
	}
}
