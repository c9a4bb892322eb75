package operation

// OperationInfo describes one selectable operation of a resource.
type OperationInfo struct {
	Operation   Operation
	Name        string
	Description string
	Action      string
}

// ResourceInfo describes a resource and the operations it offers. The first
// operation is the default selection.
type ResourceInfo struct {
	Resource   Resource
	Name       string
	Operations []OperationInfo
}

// Resources is the operation catalog, in display order.
var Resources = []ResourceInfo{
	{
		Resource: ResourceCustomer,
		Name:     "Customer",
		Operations: []OperationInfo{
			{"create", "Create", "Create a new customer in Kapso", "Create a customer"},
			{"list", "Get Many", "List customers with search and pagination", "Get many customers"},
			{"listConfigs", "Get Many Configs", "List WhatsApp configs for a customer", "Get many customer configs"},
		},
	},
	{
		Resource: ResourceProject,
		Name:     "Project",
		Operations: []OperationInfo{
			{"getInfo", "Get", "Get current project ID and name", "Get project info"},
		},
	},
	{
		Resource: ResourceSetupLink,
		Name:     "Setup Link",
		Operations: []OperationInfo{
			{"generate", "Create", "Generate a branded setup link for customer WhatsApp connection", "Create a setup link"},
			{"list", "Get Many", "List setup links for a customer with status and expiry", "Get many setup links"},
			{"revoke", "Delete", "Revoke an active setup link to invalidate the onboarding URL", "Delete a setup link"},
		},
	},
	{
		Resource: ResourceWhatsAppConfig,
		Name:     "WhatsApp Config",
		Operations: []OperationInfo{
			{"listOverview", "Get Many", "List host numbers for selection", "Get many WhatsApp configs"},
		},
	},
	{
		Resource: ResourceWhatsAppContact,
		Name:     "WhatsApp Contact",
		Operations: []OperationInfo{
			{"getContext", "Get", "Get contact summary with last conversation and recent messages", "Get a contact"},
			{"search", "Get Many", "Search contacts by name or phone number", "Get many contacts"},
			{"addNote", "Add Note", "Add a note to a contact for triage and follow-ups", "Add a note to a contact"},
			{"update", "Update", "Update contact display name or link to a customer", "Update a contact"},
		},
	},
	{
		Resource: ResourceWhatsAppConversation,
		Name:     "WhatsApp Conversation",
		Operations: []OperationInfo{
			{"getContext", "Get", "Get conversation metadata and recent messages", "Get a conversation"},
			{"search", "Get Many", "Search conversations by phone, name, status, or time", "Get many conversations"},
			{"searchMessages", "Search Messages", "Search message text within conversations", "Search conversation messages"},
			{"setStatus", "Update", "Update conversation status to active or ended", "Update a conversation status"},
		},
	},
	{
		Resource: ResourceWhatsAppInbox,
		Name:     "WhatsApp Inbox",
		Operations: []OperationInfo{
			{"view", "Get Many", "View inbox for a host number with last message preview and unread count", "Get many inbox conversations"},
			{"markRead", "Mark as Read", "Mark messages as read in a conversation", "Mark inbox messages as read"},
		},
	},
	{
		Resource: ResourceWhatsAppMessage,
		Name:     "WhatsApp Message",
		Operations: []OperationInfo{
			{"sendText", "Send Text", "Send a text message to an existing conversation", "Send a text message"},
			{"sendTemplate", "Send Template", "Send a template message with parameters to start new conversations", "Send a template message"},
			{"sendMedia", "Send Media", "Send an image, video, audio, or document", "Send a media message"},
			{"sendInteractive", "Send Interactive", "Send an interactive message with buttons or lists", "Send an interactive message"},
		},
	},
	{
		Resource: ResourceWhatsAppTemplate,
		Name:     "WhatsApp Template",
		Operations: []OperationInfo{
			{"list", "Get Many", "List or search approved templates with parameter details", "Get many templates"},
		},
	},
}

// DefaultResource is selected when none is given.
const DefaultResource = ResourceWhatsAppMessage

// LookupResource returns the catalog entry for r.
func LookupResource(r Resource) (ResourceInfo, bool) {
	for _, info := range Resources {
		if info.Resource == r {
			return info, true
		}
	}
	return ResourceInfo{}, false
}

// Keys lists every catalog pair in display order.
func Keys() []Key {
	var keys []Key
	for _, info := range Resources {
		for _, op := range info.Operations {
			keys = append(keys, Key{Resource: info.Resource, Operation: op.Operation})
		}
	}
	return keys
}
