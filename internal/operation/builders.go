package operation

import (
	"strings"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/validate"
)

var errRecipient = validate.Errorf("Either Conversation ID or Phone Number is required")

// WhatsApp Message

type sendTextParams struct {
	ConversationID string `field:"conversationId"`
	Phone          string `field:"phone"`
	Body           string `field:"body"`
}

func sendText(p sendTextParams, a Arguments) error {
	if err := validate.PhoneNumber(p.Phone); err != nil {
		return err
	}
	if p.ConversationID == "" && p.Phone == "" {
		return errRecipient
	}
	a.setIf("conversation_id", p.ConversationID)
	a.setIf("phone", p.Phone)
	a["body"] = p.Body
	return nil
}

type sendTemplateParams struct {
	Phone        string  `field:"phone"`
	TemplateName Locator `field:"templateName"`
	Params       any     `field:"templateParams"`
}

func sendTemplate(p sendTemplateParams, a Arguments) error {
	if err := validate.PhoneNumber(p.Phone); err != nil {
		return err
	}
	params, err := jsonValue(p.Params, "Template Parameters")
	if err != nil {
		return err
	}
	a.setIf("phone", p.Phone)
	a["template_name"] = p.TemplateName.Value
	a["parameters"] = params
	return nil
}

type sendMediaParams struct {
	ConversationID string `field:"conversationId"`
	Phone          string `field:"phone"`
	MediaType      string `field:"mediaType"`
	MediaURL       string `field:"mediaUrl"`
	Caption        string `field:"caption"`
}

func sendMedia(p sendMediaParams, a Arguments) error {
	if err := validate.PhoneNumber(p.Phone); err != nil {
		return err
	}
	if err := validate.URL(p.MediaURL, "Media URL"); err != nil {
		return err
	}
	if p.ConversationID == "" && p.Phone == "" {
		return errRecipient
	}
	a.setIf("conversation_id", p.ConversationID)
	a.setIf("phone", p.Phone)
	a["media_type"] = p.MediaType
	a["url"] = p.MediaURL
	a.setIf("caption", p.Caption)
	return nil
}

type sendInteractiveParams struct {
	ConversationID  string `field:"conversationId"`
	Phone           string `field:"phone"`
	InteractiveType string `field:"interactiveType"`
	BodyText        string `field:"bodyText"`
	Data            any    `field:"interactiveData"`
}

func sendInteractive(p sendInteractiveParams, a Arguments) error {
	if err := validate.PhoneNumber(p.Phone); err != nil {
		return err
	}
	if p.ConversationID == "" && p.Phone == "" {
		return errRecipient
	}
	data, err := jsonValue(p.Data, "Interactive Data")
	if err != nil {
		return err
	}
	a.setIf("conversation_id", p.ConversationID)
	a.setIf("phone", p.Phone)
	a["interactive_type"] = p.InteractiveType
	a["body_text"] = p.BodyText
	a["interactive_data"] = data
	return nil
}

// jsonValue accepts either JSON text or an already decoded value.
func jsonValue(v any, label string) (any, error) {
	if s, ok := v.(string); ok {
		return validate.JSON(s, label)
	}
	return v, nil
}

// WhatsApp Template

type listTemplatesParams struct {
	Search string `field:"searchQuery"`
}

func listTemplates(p listTemplatesParams, a Arguments) error {
	a.setIf("search", p.Search)
	return nil
}

// WhatsApp Inbox

type viewInboxParams struct {
	HostNumber Locator `field:"hostNumberId"`
}

func viewInbox(p viewInboxParams, a Arguments) error {
	a.setIf("host_number_id", p.HostNumber.Value)
	return nil
}

type markReadParams struct {
	MessageIDs string `field:"messageIds"`
}

// markRead sends every comma-separated piece, trimmed. Empty pieces are kept.
func markRead(p markReadParams, a Arguments) error {
	ids := strings.Split(p.MessageIDs, ",")
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
	}
	a["message_ids"] = ids
	return nil
}

// WhatsApp Conversation

type conversationParams struct {
	ConversationID string `field:"conversationIdGet"`
	Status         string `field:"conversationStatus"`
}

func conversationContext(p conversationParams, a Arguments) error {
	a["conversation_id"] = p.ConversationID
	return nil
}

func setConversationStatus(p conversationParams, a Arguments) error {
	a["conversation_id"] = p.ConversationID
	a["status"] = p.Status
	return nil
}

type searchConversationsParams struct {
	Query string `field:"conversationSearchQuery"`
}

func searchConversations(p searchConversationsParams, a Arguments) error {
	a.setIf("query", p.Query)
	return nil
}

type searchMessagesParams struct {
	Query string `field:"messageSearchQuery"`
}

// searchMessages always sends query, even when empty.
func searchMessages(p searchMessagesParams, a Arguments) error {
	a["query"] = p.Query
	return nil
}

// WhatsApp Contact

type contactParams struct {
	ContactID      string `field:"contactId"`
	Note           string `field:"contactNote"`
	DisplayName    string `field:"displayName"`
	LinkCustomerID string `field:"linkCustomerId"`
}

func contactContext(p contactParams, a Arguments) error {
	a["contact_id"] = p.ContactID
	return nil
}

func addContactNote(p contactParams, a Arguments) error {
	a["contact_id"] = p.ContactID
	a["note"] = p.Note
	return nil
}

func updateContact(p contactParams, a Arguments) error {
	a["contact_id"] = p.ContactID
	a.setIf("display_name", p.DisplayName)
	a.setIf("customer_id", p.LinkCustomerID)
	return nil
}

type searchContactsParams struct {
	Query string `field:"contactSearchQuery"`
}

func searchContacts(p searchContactsParams, a Arguments) error {
	a.setIf("query", p.Query)
	return nil
}

// Customer

type createCustomerParams struct {
	Name       string `field:"customerName"`
	ExternalID string `field:"externalCustomerId"`
}

func createCustomer(p createCustomerParams, a Arguments) error {
	a["name"] = p.Name
	a.setIf("external_customer_id", p.ExternalID)
	return nil
}

type listCustomersParams struct {
	Search string `field:"customerSearchQuery"`
}

func listCustomers(p listCustomersParams, a Arguments) error {
	a.setIf("search", p.Search)
	return nil
}

type customerConfigsParams struct {
	CustomerID Locator `field:"customerId"`
}

func listCustomerConfigs(p customerConfigsParams, a Arguments) error {
	a["customer_id"] = p.CustomerID.Value
	return nil
}

// Setup Link

type setupLinkParams struct {
	CustomerID  Locator `field:"setupLinkCustomerId"`
	SetupLinkID string  `field:"setupLinkId"`
}

func setupLinkCustomer(p setupLinkParams, a Arguments) error {
	a["customer_id"] = p.CustomerID.Value
	return nil
}

func revokeSetupLink(p setupLinkParams, a Arguments) error {
	a["customer_id"] = p.CustomerID.Value
	a["setup_link_id"] = p.SetupLinkID
	return nil
}
