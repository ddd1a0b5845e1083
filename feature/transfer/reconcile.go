package transfer

import (
	"errors"

	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"
	"specy-indexer/feature/transfer/models"
)

// DefaultEventKind is the event type that evidences a transfer.
const DefaultEventKind = "transfer"

// ErrEmptyHash is returned for a transaction without a hash.
var ErrEmptyHash = errors.New("transaction has no hash")

// Build constructs the transfer for tx from one qualifying event.
func Build(tx chain.Transaction, ev chain.Event) (*models.Transfer, error) {
	a, err := Decode(ev)
	if err != nil {
		return nil, err
	}
	return &models.Transfer{
		ID:              tx.Hash,
		Hash:            tx.Hash,
		Sender:          a.Sender,
		Receiver:        a.Recipient,
		Value:           a.Amount,
		TokenName:       a.Denom,
		Timestamp:       tx.Block.Time.Unix(),
		ContractAddress: a.ContractAddress,
	}, nil
}

// Reconcile decides what the store must do for tx given the transfer currently
// stored under its hash (nil if none). Only events of eventKind qualify.
// It performs no I/O.
func Reconcile(tx chain.Transaction, existing store.Entity, eventKind string) (reconcile.Action, error) {
	if tx.Hash == "" {
		return reconcile.Action{}, ErrEmptyHash
	}

	var (
		built *models.Transfer
		found bool
	)
	for _, ev := range tx.Events {
		if ev.Type != eventKind {
			continue
		}
		found = true
		if existing != nil || built != nil {
			continue
		}
		t, err := Build(tx, ev)
		if err != nil {
			return reconcile.Action{}, err
		}
		built = t
	}

	switch {
	case built != nil:
		return reconcile.Upsert(built, "qualifying event"), nil
	case found:
		return reconcile.NoOp(store.KindTransfer, tx.Hash, "transfer already recorded"), nil
	case existing != nil:
		return reconcile.Remove(store.KindTransfer, tx.Hash, "qualifying event withdrawn"), nil
	default:
		return reconcile.NoOp(store.KindTransfer, tx.Hash, "no qualifying event"), nil
	}
}
