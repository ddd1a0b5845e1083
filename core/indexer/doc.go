// Package indexer turns delivered blocks into entity mutations.
//
// For each block the header is stored first, then every transaction is
// processed in order: its events are routed by type to the governance
// reconcilers, and the transaction as a whole goes through the transfer
// aggregator. The event types are configurable (indexer section).
//
// PlanBlock performs the same walk against a store.Overlay, which yields the
// exact plan a real run would apply, including actions that depend on earlier
// ones in the same block.
//
// Outcomes are counted in Prometheus when Metrics is provided.
package indexer
