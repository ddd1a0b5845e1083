package chain

// Attribute names consumed by the reconcilers.
const (
	AttrOperationType = "operation_type"

	AttrRuleName    = "rule_name"
	AttrRuleContent = "rule_content"
	AttrRuleHash    = "rule_hash"

	AttrBindingName           = "binding_name"
	AttrBindingContent        = "binding_content"
	AttrBindingHash           = "binding_hash"
	AttrBindingRuleFilesNames = "binding_rule_files_names"

	AttrContractAddress = "contract_address"

	AttrProposalID     = "proposal_id"
	AttrProposalResult = "proposal_result"

	AttrSender    = "sender"
	AttrRecipient = "recipient"
	AttrAmount    = "amount"
	AttrDenom     = "denom"
)

// Attribute is a single key/value pair emitted on an event.
type Attribute struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Event is a structured record emitted by a transaction's execution.
type Event struct {
	// Type is the event kind tag (e.g. "transfer").
	Type string `json:"type" yaml:"type"`
	// Attributes keeps emission order.
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// NewEvent builds an event of the given kind.
func NewEvent(eventType string, attrs ...Attribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// Get returns the value of the first attribute named name.
func (e Event) Get(name string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Value returns the attribute value or "" when absent.
func (e Event) Value(name string) string {
	v, _ := e.Get(name)
	return v
}
