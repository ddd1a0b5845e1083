// Package chain defines the inputs handed to the indexer by the delivery layer.
//
// A delivery unit is a Block: one BlockHeader plus the transactions it contains,
// each transaction carrying its ordered list of emitted events. Events are
// attribute-tagged records; attribute order is preserved exactly as emitted.
//
// # Attributes
//
// Attribute names consumed by the reconcilers are exported as constants
// (AttrOperationType, AttrRuleName, ...). Names are case-sensitive.
//
// Block heights decode from JSON numbers or quoted decimal strings.
//
// # Usage
//
//	ev := chain.NewEvent("transfer",
//	    chain.Attribute{Key: chain.AttrSender, Value: "S"},
//	    chain.Attribute{Key: chain.AttrAmount, Value: "1000"},
//	)
//	amount, ok := ev.Get(chain.AttrAmount)
package chain
