package models

import "specy-indexer/core/store"

// Block is one observed block, keyed by its hash.
type Block struct {
	ID              string `gorm:"column:id;primaryKey;size:191" json:"id"`
	Height          uint64 `gorm:"column:height;index" json:"height"`
	AppHash         string `gorm:"column:app_hash;size:191" json:"app_hash"`
	DataHash        string `gorm:"column:data_hash;size:191" json:"data_hash"`
	ProposerAddress string `gorm:"column:proposer_address;size:191" json:"proposer_address"`
	// Timestamp is the block time in unix nanoseconds.
	Timestamp int64 `gorm:"column:timestamp" json:"timestamp"`
}

// TableName overrides the table name.
func (Block) TableName() string { return "blocks" }

// Kind implements store.Entity.
func (Block) Kind() store.Kind { return store.KindBlock }

// Key implements store.Entity.
func (b *Block) Key() string { return b.ID }

// Register adds the block model to reg.
func Register(reg *store.Registry) {
	reg.Register(store.KindBlock, func() store.Entity { return &Block{} })
}
