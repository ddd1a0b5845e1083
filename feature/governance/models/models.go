package models

import "specy-indexer/core/store"

// Rule is a named compliance rule file.
type Rule struct {
	ID      string `gorm:"column:id;primaryKey;size:191" json:"id"`
	Name    string `gorm:"column:name;size:191" json:"name"`
	Content string `gorm:"column:content;type:text" json:"content"`
	Hash    string `gorm:"column:hash;size:191" json:"hash"`
}

// TableName overrides the table name.
func (Rule) TableName() string { return "rules" }

// Kind implements store.Entity.
func (Rule) Kind() store.Kind { return store.KindRule }

// Key implements store.Entity.
func (r *Rule) Key() string { return r.ID }

// Binding groups rules under a name so contracts can be bound to them.
type Binding struct {
	ID      string `gorm:"column:id;primaryKey;size:191" json:"id"`
	Name    string `gorm:"column:name;size:191" json:"name"`
	Content string `gorm:"column:content;type:text" json:"content"`
	Hash    string `gorm:"column:hash;size:191" json:"hash"`
	// Rules keeps emission order and duplicates.
	Rules []string `gorm:"column:rules;type:text;serializer:json" json:"rules"`
}

// TableName overrides the table name.
func (Binding) TableName() string { return "bindings" }

// Kind implements store.Entity.
func (Binding) Kind() store.Kind { return store.KindBinding }

// Key implements store.Entity.
func (b *Binding) Key() string { return b.ID }

// Relation binds one contract address to one binding.
type Relation struct {
	ID              string `gorm:"column:id;primaryKey;size:191" json:"id"`
	ContractAddress string `gorm:"column:contract_address;size:191" json:"contract_address"`
	Binding         string `gorm:"column:binding;size:191;index" json:"binding"`
}

// TableName overrides the table name.
func (Relation) TableName() string { return "relations" }

// Kind implements store.Entity.
func (Relation) Kind() store.Kind { return store.KindRelation }

// Key implements store.Entity.
func (r *Relation) Key() string { return r.ID }

// Proposal records the outcome of a governance proposal.
type Proposal struct {
	ID     string `gorm:"column:id;primaryKey;size:191" json:"id"`
	Result string `gorm:"column:result;size:191" json:"result"`
}

// TableName overrides the table name.
func (Proposal) TableName() string { return "proposals" }

// Kind implements store.Entity.
func (Proposal) Kind() store.Kind { return store.KindProposal }

// Key implements store.Entity.
func (p *Proposal) Key() string { return p.ID }

// Register adds the governance models to reg.
func Register(reg *store.Registry) {
	reg.Register(store.KindRule, func() store.Entity { return &Rule{} })
	reg.Register(store.KindBinding, func() store.Entity { return &Binding{} })
	reg.Register(store.KindRelation, func() store.Entity { return &Relation{} })
	reg.Register(store.KindProposal, func() store.Entity { return &Proposal{} })
}
