package governance

import (
	"fmt"

	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"
	"specy-indexer/feature/governance/models"
)

func unexpectedEntity(want store.Kind, got store.Entity) error {
	return fmt.Errorf("expected %s entity, got %T", want, got)
}

// RuleAdapter reconciles rule events.
type RuleAdapter struct{}

func (RuleAdapter) Name() string     { return "rule" }
func (RuleAdapter) Kind() store.Kind { return store.KindRule }

func (RuleAdapter) ExtractKey(ev chain.Event) (string, error) {
	return reconcile.RequireKey(ev, chain.AttrRuleName)
}

func (RuleAdapter) Build(key string, ev chain.Event) (store.Entity, error) {
	a, err := DecodeRule(ev)
	if err != nil {
		return nil, err
	}
	return &models.Rule{ID: key, Name: key, Content: a.Content, Hash: a.Hash}, nil
}

func (RuleAdapter) Merge(existing store.Entity, ev chain.Event) (store.Entity, error) {
	rule, ok := existing.(*models.Rule)
	if !ok {
		return nil, unexpectedEntity(store.KindRule, existing)
	}
	a, err := DecodeRule(ev)
	if err != nil {
		return nil, err
	}
	updated := *rule
	updated.Content = a.Content
	updated.Hash = a.Hash
	return &updated, nil
}

// BindingAdapter reconciles binding events.
type BindingAdapter struct{}

func (BindingAdapter) Name() string     { return "binding" }
func (BindingAdapter) Kind() store.Kind { return store.KindBinding }

func (BindingAdapter) ExtractKey(ev chain.Event) (string, error) {
	return reconcile.RequireKey(ev, chain.AttrBindingName)
}

func (BindingAdapter) Build(key string, ev chain.Event) (store.Entity, error) {
	a, err := DecodeBinding(ev)
	if err != nil {
		return nil, err
	}
	return &models.Binding{ID: key, Name: key, Content: a.Content, Hash: a.Hash, Rules: a.Rules}, nil
}

func (BindingAdapter) Merge(existing store.Entity, ev chain.Event) (store.Entity, error) {
	binding, ok := existing.(*models.Binding)
	if !ok {
		return nil, unexpectedEntity(store.KindBinding, existing)
	}
	a, err := DecodeBinding(ev)
	if err != nil {
		return nil, err
	}
	updated := *binding
	updated.Content = a.Content
	updated.Hash = a.Hash
	updated.Rules = a.Rules
	return &updated, nil
}

// RelationAdapter reconciles contract relation events.
type RelationAdapter struct{}

func (RelationAdapter) Name() string     { return "relation" }
func (RelationAdapter) Kind() store.Kind { return store.KindRelation }

func (RelationAdapter) ExtractKey(ev chain.Event) (string, error) {
	return reconcile.RequireKey(ev, chain.AttrContractAddress)
}

func (RelationAdapter) Build(key string, ev chain.Event) (store.Entity, error) {
	a, err := DecodeRelation(ev)
	if err != nil {
		return nil, err
	}
	return &models.Relation{ID: key, ContractAddress: key, Binding: a.BindingName}, nil
}

func (RelationAdapter) Merge(existing store.Entity, ev chain.Event) (store.Entity, error) {
	relation, ok := existing.(*models.Relation)
	if !ok {
		return nil, unexpectedEntity(store.KindRelation, existing)
	}
	a, err := DecodeRelation(ev)
	if err != nil {
		return nil, err
	}
	updated := *relation
	updated.Binding = a.BindingName
	return &updated, nil
}

// ProposalAdapter reconciles proposal results. It is used in insert-only mode.
type ProposalAdapter struct{}

func (ProposalAdapter) Name() string     { return "proposal" }
func (ProposalAdapter) Kind() store.Kind { return store.KindProposal }

func (ProposalAdapter) ExtractKey(ev chain.Event) (string, error) {
	return reconcile.RequireKey(ev, chain.AttrProposalID)
}

func (ProposalAdapter) Build(key string, ev chain.Event) (store.Entity, error) {
	a, err := DecodeProposal(ev)
	if err != nil {
		return nil, err
	}
	return &models.Proposal{ID: key, Result: a.Result}, nil
}

func (ProposalAdapter) Merge(existing store.Entity, ev chain.Event) (store.Entity, error) {
	proposal, ok := existing.(*models.Proposal)
	if !ok {
		return nil, unexpectedEntity(store.KindProposal, existing)
	}
	a, err := DecodeProposal(ev)
	if err != nil {
		return nil, err
	}
	updated := *proposal
	updated.Result = a.Result
	return &updated, nil
}
