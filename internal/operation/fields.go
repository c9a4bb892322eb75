package operation

// FieldType is the form control a field is rendered with.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldOptions FieldType = "options"
	FieldLocator FieldType = "resourceLocator"
	FieldJSON    FieldType = "json"
)

// Field is one entry of the field catalog.
type Field struct {
	Name        string
	DisplayName string
	Type        FieldType
	Default     any
	Required    bool
	Options     []string
	Description string
	// Show lists the pairs the field applies to. A nil Show means every pair.
	Show []Key
}

// AppliesTo reports whether f is shown for k.
func (f Field) AppliesTo(k Key) bool {
	if f.Show == nil {
		return true
	}
	for _, s := range f.Show {
		if s == k {
			return true
		}
	}
	return false
}

func on(r Resource, ops ...Operation) []Key {
	keys := make([]Key, 0, len(ops))
	for _, op := range ops {
		keys = append(keys, Key{Resource: r, Operation: op})
	}
	return keys
}

var emptyLocator = map[string]any{"mode": "list", "value": ""}

// Catalog is the field catalog shared by every operation.
var Catalog = []Field{
	{
		Name: "responseFormat", DisplayName: "Response Format", Type: FieldOptions,
		Default: FormatConcise, Options: []string{FormatConcise, FormatDetailed},
		Description: "Whether to return a simplified version of the response instead of the raw data",
	},

	// WhatsApp Message
	{
		Name: "conversationId", DisplayName: "Conversation ID", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppMessage, "sendText", "sendMedia", "sendInteractive"),
		Description: "The conversation ID to send message to",
	},
	{
		Name: "phone", DisplayName: "Phone Number", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppMessage, "sendText", "sendTemplate", "sendMedia", "sendInteractive"),
		Description: "Phone number in international format, e.g. +15551234567",
	},
	{
		Name: "body", DisplayName: "Message Body", Type: FieldString, Default: "", Required: true,
		Show:        on(ResourceWhatsAppMessage, "sendText"),
		Description: "The text message to send",
	},
	{
		Name: "templateName", DisplayName: "Template Name", Type: FieldLocator, Default: emptyLocator, Required: true,
		Show:        on(ResourceWhatsAppMessage, "sendTemplate"),
		Description: "Name of the approved template to send",
	},
	{
		Name: "templateParams", DisplayName: "Template Parameters (JSON)", Type: FieldJSON, Default: "{}",
		Show:        on(ResourceWhatsAppMessage, "sendTemplate"),
		Description: "Template parameters as JSON object",
	},
	{
		Name: "mediaType", DisplayName: "Media Type", Type: FieldOptions, Default: "image",
		Options: []string{"audio", "document", "image", "video"},
		Show:    on(ResourceWhatsAppMessage, "sendMedia"),
	},
	{
		Name: "mediaUrl", DisplayName: "Media URL", Type: FieldString, Default: "", Required: true,
		Show:        on(ResourceWhatsAppMessage, "sendMedia"),
		Description: "URL of the media file to send",
	},
	{
		Name: "caption", DisplayName: "Caption", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppMessage, "sendMedia"),
		Description: "Optional caption for the media",
	},
	{
		Name: "interactiveType", DisplayName: "Interactive Type", Type: FieldOptions, Default: "button",
		Options: []string{"button", "list"},
		Show:    on(ResourceWhatsAppMessage, "sendInteractive"),
	},
	{
		Name: "bodyText", DisplayName: "Body Text", Type: FieldString, Default: "", Required: true,
		Show:        on(ResourceWhatsAppMessage, "sendInteractive"),
		Description: "The body text of the interactive message",
	},
	{
		Name: "interactiveData", DisplayName: "Interactive Data (JSON)", Type: FieldJSON, Required: true,
		Default:     `{"buttons":[{"id":"btn1","title":"Yes"},{"id":"btn2","title":"No"}]}`,
		Show:        on(ResourceWhatsAppMessage, "sendInteractive"),
		Description: "Buttons or sections data as JSON",
	},

	// WhatsApp Template
	{
		Name: "searchQuery", DisplayName: "Search Query", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppTemplate, "list"),
		Description: "Optional search query to filter templates",
	},

	// WhatsApp Inbox
	{
		Name: "hostNumberId", DisplayName: "Host Number", Type: FieldLocator, Default: emptyLocator,
		Show:        on(ResourceWhatsAppInbox, "view"),
		Description: "The WhatsApp host number to view inbox for",
	},
	{
		Name: "messageIds", DisplayName: "Message IDs", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppInbox, "markRead"),
		Description: "Comma-separated message IDs to mark as read",
	},

	// WhatsApp Conversation
	{
		Name: "conversationIdGet", DisplayName: "Conversation ID", Type: FieldString, Default: "", Required: true,
		Show: on(ResourceWhatsAppConversation, "getContext", "setStatus"),
	},
	{
		Name: "conversationSearchQuery", DisplayName: "Search Query", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppConversation, "search"),
		Description: "Search by phone, name, status, or time",
	},
	{
		Name: "messageSearchQuery", DisplayName: "Message Search Query", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppConversation, "searchMessages"),
		Description: "Search message text",
	},
	{
		Name: "conversationStatus", DisplayName: "Status", Type: FieldOptions, Default: "active",
		Options:     []string{"active", "ended"},
		Show:        on(ResourceWhatsAppConversation, "setStatus"),
		Description: "The new status for the conversation",
	},

	// WhatsApp Contact
	{
		Name: "contactId", DisplayName: "Contact ID", Type: FieldString, Default: "", Required: true,
		Show: on(ResourceWhatsAppContact, "getContext", "addNote", "update"),
	},
	{
		Name: "contactSearchQuery", DisplayName: "Search Query", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppContact, "search"),
		Description: "Search contacts by name or phone",
	},
	{
		Name: "contactNote", DisplayName: "Note", Type: FieldString, Default: "", Required: true,
		Show:        on(ResourceWhatsAppContact, "addNote"),
		Description: "Note to add to the contact",
	},
	{
		Name: "displayName", DisplayName: "Display Name", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppContact, "update"),
		Description: "New display name for the contact",
	},
	{
		Name: "linkCustomerId", DisplayName: "Link Customer ID", Type: FieldString, Default: "",
		Show:        on(ResourceWhatsAppContact, "update"),
		Description: "Customer ID to link to this contact",
	},

	// Customer
	{
		Name: "customerName", DisplayName: "Customer Name", Type: FieldString, Default: "", Required: true,
		Show:        on(ResourceCustomer, "create"),
		Description: "Name of the customer",
	},
	{
		Name: "externalCustomerId", DisplayName: "External Customer ID", Type: FieldString, Default: "",
		Show:        on(ResourceCustomer, "create"),
		Description: "Your internal ID for this customer",
	},
	{
		Name: "customerSearchQuery", DisplayName: "Search Query", Type: FieldString, Default: "",
		Show:        on(ResourceCustomer, "list"),
		Description: "Optional search query",
	},
	{
		Name: "customerId", DisplayName: "Customer ID", Type: FieldLocator, Default: emptyLocator, Required: true,
		Show:        on(ResourceCustomer, "listConfigs"),
		Description: "The customer to get configs for",
	},

	// Setup Link
	{
		Name: "setupLinkCustomerId", DisplayName: "Customer ID", Type: FieldLocator, Default: emptyLocator, Required: true,
		Show:        on(ResourceSetupLink, "generate", "list", "revoke"),
		Description: "The customer to create/manage setup links for",
	},
	{
		Name: "setupLinkId", DisplayName: "Setup Link ID", Type: FieldString, Default: "", Required: true,
		Show:        on(ResourceSetupLink, "revoke"),
		Description: "The setup link ID to revoke",
	},
}

// FieldsFor returns the catalog fields shown for k, in catalog order.
func FieldsFor(k Key) []Field {
	var out []Field
	for _, f := range Catalog {
		if f.AppliesTo(k) {
			out = append(out, f)
		}
	}
	return out
}
