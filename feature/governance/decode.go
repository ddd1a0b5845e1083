package governance

import (
	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/utils"
)

// RulesSeparator splits binding_rule_files_names.
const RulesSeparator = ","

// RuleAttributes are the validated attributes of a rule event.
type RuleAttributes struct {
	Name    string
	Content string
	Hash    string
}

// BindingAttributes are the validated attributes of a binding event.
type BindingAttributes struct {
	Name    string
	Content string
	Hash    string
	Rules   []string
}

// RelationAttributes are the validated attributes of a relation event.
type RelationAttributes struct {
	ContractAddress string
	BindingName     string
}

// ProposalAttributes are the validated attributes of a proposal event.
type ProposalAttributes struct {
	ID     string
	Result string
}

// DecodeRule validates a rule event.
func DecodeRule(ev chain.Event) (RuleAttributes, error) {
	var (
		a   RuleAttributes
		err error
	)
	if a.Name, err = reconcile.RequireKey(ev, chain.AttrRuleName); err != nil {
		return a, err
	}
	if a.Content, err = reconcile.Require(ev, chain.AttrRuleContent); err != nil {
		return a, err
	}
	if a.Hash, err = reconcile.Require(ev, chain.AttrRuleHash); err != nil {
		return a, err
	}
	return a, nil
}

// DecodeBinding validates a binding event. The rule list keeps emission order
// and duplicates; an empty attribute yields an empty list.
func DecodeBinding(ev chain.Event) (BindingAttributes, error) {
	var (
		a   BindingAttributes
		err error
	)
	if a.Name, err = reconcile.RequireKey(ev, chain.AttrBindingName); err != nil {
		return a, err
	}
	if a.Content, err = reconcile.Require(ev, chain.AttrBindingContent); err != nil {
		return a, err
	}
	if a.Hash, err = reconcile.Require(ev, chain.AttrBindingHash); err != nil {
		return a, err
	}
	rules, err := reconcile.Require(ev, chain.AttrBindingRuleFilesNames)
	if err != nil {
		return a, err
	}
	a.Rules = utils.SplitList(rules, RulesSeparator)
	return a, nil
}

// DecodeRelation validates a relation event.
func DecodeRelation(ev chain.Event) (RelationAttributes, error) {
	var (
		a   RelationAttributes
		err error
	)
	if a.ContractAddress, err = reconcile.RequireKey(ev, chain.AttrContractAddress); err != nil {
		return a, err
	}
	if a.BindingName, err = reconcile.Require(ev, chain.AttrBindingName); err != nil {
		return a, err
	}
	return a, nil
}

// DecodeProposal validates a proposal event.
func DecodeProposal(ev chain.Event) (ProposalAttributes, error) {
	var (
		a   ProposalAttributes
		err error
	)
	if a.ID, err = reconcile.RequireKey(ev, chain.AttrProposalID); err != nil {
		return a, err
	}
	if a.Result, err = reconcile.Require(ev, chain.AttrProposalResult); err != nil {
		return a, err
	}
	return a, nil
}
