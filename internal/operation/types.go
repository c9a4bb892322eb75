package operation

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned for a (resource, operation) pair that has no
// entry in the dispatch table.
var ErrUnknownOperation = errors.New("no such operation")

// Resource selects the remote capability family.
type Resource string

const (
	ResourceCustomer             Resource = "customer"
	ResourceProject              Resource = "project"
	ResourceSetupLink            Resource = "setupLink"
	ResourceWhatsAppConfig       Resource = "whatsappConfig"
	ResourceWhatsAppContact      Resource = "whatsappContact"
	ResourceWhatsAppConversation Resource = "whatsappConversation"
	ResourceWhatsAppInbox        Resource = "whatsappInbox"
	ResourceWhatsAppMessage      Resource = "whatsappMessage"
	ResourceWhatsAppTemplate     Resource = "whatsappTemplate"
)

// Operation selects an action within a resource.
type Operation string

// Key identifies one row of the dispatch table.
type Key struct {
	Resource  Resource
	Operation Operation
}

func (k Key) String() string { return fmt.Sprintf("%s/%s", k.Resource, k.Operation) }

// Fields are the raw form values of one workflow item, keyed by field name.
type Fields map[string]any

// Request is one item's resolved selection plus its field values.
type Request struct {
	Resource  Resource
	Operation Operation
	Fields    Fields
}

// Key returns the dispatch-table key of r.
func (r Request) Key() Key { return Key{Resource: r.Resource, Operation: r.Operation} }

// Arguments is the argument object of a tool call.
type Arguments map[string]any

// setIf stores v under key only when v is non-empty.
func (a Arguments) setIf(key, v string) {
	if v != "" {
		a[key] = v
	}
}

// ToolCall is the remote tool name plus its arguments.
type ToolCall struct {
	Name      string
	Arguments Arguments
}

// Response formats understood by the remote tools.
const (
	FormatConcise  = "concise"
	FormatDetailed = "detailed"
)

// Locator is a value that the form lets users either pick from a list or type
// in. Mode records how it was chosen ("list", "id", "name"); a bare string
// decodes with an empty Mode. Only Value is ever sent to the remote side.
type Locator struct {
	Mode  string `field:"mode"`
	Value string `field:"value"`
}

func (l Locator) String() string { return l.Value }
