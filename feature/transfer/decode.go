package transfer

import (
	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/utils"
)

// Attributes are the validated attributes of a transfer event.
type Attributes struct {
	Sender    string
	Recipient string
	Amount    utils.BigInt
	Denom     string
	// ContractAddress is optional and empty for native token transfers.
	ContractAddress string
}

// Decode validates a transfer event. A missing or non-integer amount fails.
func Decode(ev chain.Event) (Attributes, error) {
	var (
		a   Attributes
		err error
	)
	if a.Sender, err = reconcile.Require(ev, chain.AttrSender); err != nil {
		return a, err
	}
	if a.Recipient, err = reconcile.Require(ev, chain.AttrRecipient); err != nil {
		return a, err
	}
	raw, err := reconcile.RequireKey(ev, chain.AttrAmount)
	if err != nil {
		return a, err
	}
	if a.Amount, err = utils.ParseBigInt(raw); err != nil {
		return a, reconcile.Malformed(ev, chain.AttrAmount, raw, err)
	}
	if a.Denom, err = reconcile.Require(ev, chain.AttrDenom); err != nil {
		return a, err
	}
	a.ContractAddress = ev.Value(chain.AttrContractAddress)
	return a, nil
}
