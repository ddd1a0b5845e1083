// Package governance reconciles the governance entities emitted by the
// regulatory module: rules, bindings, contract relations and proposals.
//
// Each entity type has a typed decoder that validates the event attributes and
// a reconcile.Adapter that turns decoded attributes into models:
//
//   - Rule (key rule_name): content and hash.
//   - Binding (key binding_name): content, hash and the ordered rule names
//     split from binding_rule_files_names.
//   - Relation (key contract_address): the binding the contract is bound to.
//   - Proposal (key proposal_id): the proposal result. Insert-only.
//
// Rule, Binding and Relation follow the insert/update/delete contract of
// reconcile.OperationReconciler. Updates replace every field the event carries,
// including the full rule list of a binding.
//
// # Usage
//
//	reconcilers := governance.NewReconcilers(repo, logger)
//	action, err := reconcilers.Rule.Handle(ctx, event)
package governance
