package indexer

import "fmt"

// Config maps chain event types to reconcilers.
type Config struct {
	// RuleEvent is the event type carrying rule operations.
	RuleEvent string `mapstructure:"rule_event" default:"rule"`
	// BindingEvent is the event type carrying binding operations.
	BindingEvent string `mapstructure:"binding_event" default:"binding"`
	// RelationEvent is the event type carrying contract relation operations.
	RelationEvent string `mapstructure:"relation_event" default:"relation"`
	// ProposalEvent is the event type carrying proposal results.
	ProposalEvent string `mapstructure:"proposal_event" default:"proposal"`
	// TransferEvent is the event type evidencing a transfer.
	TransferEvent string `mapstructure:"transfer_event" default:"transfer"`
}

// DefaultConfig returns the event types emitted by the regulatory and bank modules.
func DefaultConfig() Config {
	return Config{
		RuleEvent:     "rule",
		BindingEvent:  "binding",
		RelationEvent: "relation",
		ProposalEvent: "proposal",
		TransferEvent: "transfer",
	}
}

// Validate checks that every routed event type is set and distinct.
func (c Config) Validate() error {
	seen := make(map[string]string, 4)
	for name, eventType := range map[string]string{
		"rule_event":     c.RuleEvent,
		"binding_event":  c.BindingEvent,
		"relation_event": c.RelationEvent,
		"proposal_event": c.ProposalEvent,
	} {
		if eventType == "" {
			return fmt.Errorf("indexer.%s must not be empty", name)
		}
		if other, dup := seen[eventType]; dup {
			return fmt.Errorf("indexer.%s and indexer.%s both route %q", other, name, eventType)
		}
		seen[eventType] = name
	}
	if c.TransferEvent == "" {
		return fmt.Errorf("indexer.transfer_event must not be empty")
	}
	return nil
}
