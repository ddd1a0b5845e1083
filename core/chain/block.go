package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"specy-indexer/core/utils"
)

// BlockHeader carries the block context shared by all transactions in a block.
type BlockHeader struct {
	Hash            string    `json:"hash" yaml:"hash"`
	Height          uint64    `json:"height" yaml:"height"`
	AppHash         string    `json:"app_hash" yaml:"app_hash"`
	DataHash        string    `json:"data_hash" yaml:"data_hash"`
	ProposerAddress string    `json:"proposer_address" yaml:"proposer_address"`
	Time            time.Time `json:"time" yaml:"time"`
}

// UnmarshalJSON accepts the height either as a number or as a quoted decimal
// string, the form node RPC endpoints emit.
func (h *BlockHeader) UnmarshalJSON(data []byte) error {
	type plain BlockHeader
	aux := struct {
		*plain
		Height json.RawMessage `json:"height"`
	}{plain: (*plain)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Height)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		h.Height = 0
		return nil
	}
	val := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &val); err != nil {
			return err
		}
	}
	height, err := utils.ParseUint(val)
	if err != nil {
		return fmt.Errorf("block height: %w", err)
	}
	h.Height = height
	return nil
}

// Transaction is one executed transaction with its current event list.
type Transaction struct {
	// Hash is the hex-encoded transaction hash.
	Hash   string      `json:"hash" yaml:"hash"`
	Events []Event     `json:"events" yaml:"events"`
	Block  BlockHeader `json:"-" yaml:"-"`
}

// Block is the unit handed over by the delivery layer.
type Block struct {
	Header       BlockHeader   `json:"header" yaml:"header"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
}

// Bind attaches the block header to each transaction that lacks one.
func (b *Block) Bind() {
	for i := range b.Transactions {
		if b.Transactions[i].Block.Hash == "" {
			b.Transactions[i].Block = b.Header
		}
	}
}
