package operation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/validate"
)

// builder fills args from the decoded fields of one item.
type builder func(Fields, Arguments) error

// Descriptor is one row of the dispatch table.
type Descriptor struct {
	Tool  string
	build builder
}

var table = map[Key]Descriptor{
	{ResourceWhatsAppMessage, "sendText"}:        {"whatsapp_send_text_message", with(sendText)},
	{ResourceWhatsAppMessage, "sendTemplate"}:    {"whatsapp_send_template", with(sendTemplate)},
	{ResourceWhatsAppMessage, "sendMedia"}:       {"whatsapp_send_media", with(sendMedia)},
	{ResourceWhatsAppMessage, "sendInteractive"}: {"whatsapp_send_interactive", with(sendInteractive)},

	{ResourceWhatsAppTemplate, "list"}: {"whatsapp_templates", with(listTemplates)},

	{ResourceWhatsAppInbox, "view"}:     {"whatsapp_inbox", with(viewInbox)},
	{ResourceWhatsAppInbox, "markRead"}: {"whatsapp_mark_inbound_read", with(markRead)},

	{ResourceWhatsAppConversation, "getContext"}:     {"whatsapp_get_conversation_context", with(conversationContext)},
	{ResourceWhatsAppConversation, "search"}:         {"whatsapp_search_conversations", with(searchConversations)},
	{ResourceWhatsAppConversation, "searchMessages"}: {"whatsapp_search_messages", with(searchMessages)},
	{ResourceWhatsAppConversation, "setStatus"}:      {"whatsapp_conversation_set_status", with(setConversationStatus)},

	{ResourceWhatsAppContact, "getContext"}: {"whatsapp_get_contact_context", with(contactContext)},
	{ResourceWhatsAppContact, "search"}:     {"whatsapp_search_contacts", with(searchContacts)},
	{ResourceWhatsAppContact, "addNote"}:    {"whatsapp_contact_add_note", with(addContactNote)},
	{ResourceWhatsAppContact, "update"}:     {"whatsapp_contact_update", with(updateContact)},

	{ResourceWhatsAppConfig, "listOverview"}: {"whatsapp_configs_overview", noArgs},

	{ResourceCustomer, "create"}:      {"platform_create_customer", with(createCustomer)},
	{ResourceCustomer, "list"}:        {"platform_list_customers", with(listCustomers)},
	{ResourceCustomer, "listConfigs"}: {"platform_list_customer_configs", with(listCustomerConfigs)},

	{ResourceSetupLink, "generate"}: {"platform_generate_setup_link", with(setupLinkCustomer)},
	{ResourceSetupLink, "list"}:     {"platform_list_setup_links", with(setupLinkCustomer)},
	{ResourceSetupLink, "revoke"}:   {"platform_revoke_setup_link", with(revokeSetupLink)},

	{ResourceProject, "getInfo"}: {"project_info", noArgs},
}

// Lookup returns the descriptor for k.
func Lookup(k Key) (Descriptor, bool) {
	d, ok := table[k]
	return d, ok
}

// Map validates req and translates it into a tool call. Missing fields take
// their catalog defaults first. No I/O happens here.
func Map(req Request) (ToolCall, error) {
	key := req.Key()
	d, ok := table[key]
	if !ok {
		return ToolCall{}, fmt.Errorf("%s: %w", key, ErrUnknownOperation)
	}

	fields := WithDefaults(key, req.Fields)
	if err := checkRequired(key, fields); err != nil {
		return ToolCall{}, err
	}

	format, err := responseFormat(fields)
	if err != nil {
		return ToolCall{}, err
	}
	args := Arguments{"response_format": format}
	if err := d.build(fields, args); err != nil {
		return ToolCall{}, err
	}
	return ToolCall{Name: d.Tool, Arguments: args}, nil
}

// WithDefaults returns a copy of fields where every catalog field shown for k
// that is absent or nil carries its default.
func WithDefaults(k Key, fields Fields) Fields {
	out := make(Fields, len(fields))
	for name, v := range fields {
		out[name] = v
	}
	for _, f := range FieldsFor(k) {
		if v, ok := out[f.Name]; !ok || v == nil {
			out[f.Name] = f.Default
		}
	}
	return out
}

func checkRequired(k Key, fields Fields) error {
	for _, f := range FieldsFor(k) {
		if !f.Required {
			continue
		}
		v := fields[f.Name]
		if f.Type == FieldLocator {
			if m, ok := v.(map[string]any); ok {
				v = m["value"]
			}
		}
		if blank(v) {
			return validate.Errorf("%s is required", f.DisplayName)
		}
	}
	return nil
}

func blank(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func responseFormat(fields Fields) (string, error) {
	switch v := fields["responseFormat"].(type) {
	case nil:
		return FormatConcise, nil
	case string:
		if v == "" {
			return FormatConcise, nil
		}
		if v == FormatConcise || v == FormatDetailed {
			return v, nil
		}
		return "", validate.Errorf("Response Format must be %q or %q, got %q", FormatConcise, FormatDetailed, v)
	default:
		return "", validate.Errorf("Response Format must be a string")
	}
}

// with adapts a typed builder: fields are decoded into P before fn runs.
func with[P any](fn func(P, Arguments) error) builder {
	return func(fields Fields, args Arguments) error {
		var p P
		if err := decode(fields, &p); err != nil {
			return err
		}
		return fn(p, args)
	}
}

func noArgs(Fields, Arguments) error { return nil }

var locatorType = reflect.TypeOf(Locator{})

// locatorHook lets a bare string stand in for a Locator.
func locatorHook(from, to reflect.Type, data any) (any, error) {
	if to != locatorType || from.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"value": data}, nil
}

func decode(fields Fields, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "field",
		WeaklyTypedInput: true,
		DecodeHook:       locatorHook,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(fields)); err != nil {
		return validate.Errorf("invalid field value: %v", err)
	}
	return nil
}
