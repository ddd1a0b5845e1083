package models

import (
	"specy-indexer/core/store"
	"specy-indexer/core/utils"
)

// Transfer is the token transfer evidenced by a transaction, keyed by the
// transaction hash.
type Transfer struct {
	ID       string `gorm:"column:id;primaryKey;size:191" json:"id"`
	Hash     string `gorm:"column:hash;size:191" json:"hash"`
	Sender   string `gorm:"column:sender;size:191;index" json:"sender"`
	Receiver string `gorm:"column:receiver;size:191;index" json:"receiver"`
	// Value is stored as a decimal string so no precision is lost.
	Value     utils.BigInt `gorm:"column:value;type:text" json:"value"`
	TokenName string       `gorm:"column:token_name;size:191" json:"tokenname"`
	// Timestamp is the block time in unix seconds.
	Timestamp       int64  `gorm:"column:timestamp" json:"timestamp"`
	ContractAddress string `gorm:"column:contract_address;size:191" json:"contract_address"`
}

// TableName overrides the table name.
func (Transfer) TableName() string { return "transfers" }

// Kind implements store.Entity.
func (Transfer) Kind() store.Kind { return store.KindTransfer }

// Key implements store.Entity.
func (t *Transfer) Key() string { return t.ID }

// Register adds the transfer model to reg.
func Register(reg *store.Registry) {
	reg.Register(store.KindTransfer, func() store.Entity { return &Transfer{} })
}
