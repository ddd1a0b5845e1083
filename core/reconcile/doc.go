// Package reconcile turns observed events into entity store mutations.
//
// Reconciliation is split into two steps, mirroring a plan/apply workflow:
//
//  1. Plan: a pure function inspects the event and the currently stored entity
//     (if any) and returns an Action: NoOp, Upsert(entity) or Remove(kind, key).
//  2. Apply: the Action is executed against a store.Repository. Each Action is
//     at most one mutation.
//
// Keeping planning free of side effects lets the consistency rules be tested
// without a store, and lets callers run in dry-run mode.
//
// # Operation Reconciler
//
// Events carrying an "operation_type" attribute are reconciled by an
// OperationReconciler configured with an Adapter for one entity type:
//
//   - insert: build a new entity from the event and overwrite any stored value.
//   - update: if the key exists, replace the fields the event carries; otherwise no-op.
//   - delete: if the key exists, remove it; otherwise no-op.
//   - any other value (or none): no-op, so newer event schemas do not fail older indexers.
//
// Insert-only entity types (proposals) use the InsertOnly option, which ignores
// operation_type entirely.
//
// # Errors
//
// Missing or malformed attributes are reported as *AttributeError, wrapping
// ErrMissingAttribute or ErrMalformedAttribute. Absent entities are never errors.
//
// # Usage Example
//
//	r := reconcile.NewOperationReconciler(governance.RuleAdapter{}, repo, logger)
//	action, err := r.Handle(ctx, event)
package reconcile
