// Package transfer keeps one Transfer entity per transaction hash in step with
// the transaction's current event list.
//
// Each time a transaction is delivered the aggregator scans its events in order:
//
//   - No stored transfer and a qualifying event present: the first qualifying
//     event builds the transfer. Later ones in the same transaction are ignored.
//   - Stored transfer and a qualifying event present: nothing changes.
//   - Stored transfer and no qualifying event: the transfer is retracted.
//   - Neither: nothing changes.
//
// The decision is made by the pure Reconcile function; Aggregator loads the
// stored state and applies the resulting action.
package transfer
