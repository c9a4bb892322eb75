package operation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/validate"
)

func mapOK(t *testing.T, r Resource, op Operation, fields Fields) ToolCall {
	t.Helper()
	call, err := Map(Request{Resource: r, Operation: op, Fields: fields})
	require.NoError(t, err)
	return call
}

func mapErr(t *testing.T, r Resource, op Operation, fields Fields) string {
	t.Helper()
	_, err := Map(Request{Resource: r, Operation: op, Fields: fields})
	require.Error(t, err)
	var verr *validate.Error
	require.True(t, errors.As(err, &verr), "want *validate.Error, got %T: %v", err, err)
	return verr.Message
}

func TestCatalogAndTableAgree(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, len(table))
	for _, k := range keys {
		_, ok := Lookup(k)
		assert.True(t, ok, "no descriptor for %s", k)
	}
	for k := range table {
		info, ok := LookupResource(k.Resource)
		require.True(t, ok, "resource %s missing from catalog", k.Resource)
		found := false
		for _, op := range info.Operations {
			found = found || op.Operation == k.Operation
		}
		assert.True(t, found, "%s missing from catalog", k)
	}
}

func TestMapUnknownOperation(t *testing.T) {
	_, err := Map(Request{Resource: ResourceWhatsAppMessage, Operation: "sendCarrierPigeon"})
	assert.ErrorIs(t, err, ErrUnknownOperation)

	_, err = Map(Request{Resource: "invoice", Operation: "list"})
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestMapSendText(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppMessage, "sendText", Fields{
		"conversationId": "conv_1",
		"body":           "hi",
	})
	assert.Equal(t, "whatsapp_send_text_message", call.Name)
	assert.Equal(t, Arguments{
		"response_format": "concise",
		"conversation_id": "conv_1",
		"body":            "hi",
	}, call.Arguments)
}

func TestMapSendTextPhoneOnly(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppMessage, "sendText", Fields{
		"phone":          "+15551234567",
		"body":           "hello",
		"responseFormat": "detailed",
	})
	assert.Equal(t, Arguments{
		"response_format": "detailed",
		"phone":           "+15551234567",
		"body":            "hello",
	}, call.Arguments)
}

func TestMapSendTextNeedsRecipient(t *testing.T) {
	msg := mapErr(t, ResourceWhatsAppMessage, "sendText", Fields{"body": "hi"})
	assert.Equal(t, "Either Conversation ID or Phone Number is required", msg)
}

func TestMapSendTextBadPhone(t *testing.T) {
	msg := mapErr(t, ResourceWhatsAppMessage, "sendText", Fields{"phone": "123", "body": "x"})
	assert.Contains(t, msg, "Invalid phone number format")
}

func TestMapRequiredField(t *testing.T) {
	msg := mapErr(t, ResourceWhatsAppMessage, "sendText", Fields{"conversationId": "c"})
	assert.Equal(t, "Message Body is required", msg)

	msg = mapErr(t, ResourceCustomer, "listConfigs", Fields{"customerId": map[string]any{"mode": "list", "value": ""}})
	assert.Equal(t, "Customer ID is required", msg)
}

func TestMapResponseFormat(t *testing.T) {
	msg := mapErr(t, ResourceProject, "getInfo", Fields{"responseFormat": "verbose"})
	assert.Contains(t, msg, "Response Format")
}

func TestMapSendTemplate(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppMessage, "sendTemplate", Fields{
		"phone":          "+15551234567",
		"templateName":   map[string]any{"mode": "list", "value": "order_update"},
		"templateParams": `{"1":"Ana"}`,
	})
	assert.Equal(t, "whatsapp_send_template", call.Name)
	assert.Equal(t, "order_update", call.Arguments["template_name"])
	assert.Equal(t, map[string]any{"1": "Ana"}, call.Arguments["parameters"])
	assert.Equal(t, "+15551234567", call.Arguments["phone"])
}

func TestMapSendTemplateDefaults(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppMessage, "sendTemplate", Fields{"templateName": "welcome"})
	assert.Equal(t, "welcome", call.Arguments["template_name"])
	assert.Equal(t, map[string]any{}, call.Arguments["parameters"])
	assert.NotContains(t, call.Arguments, "phone")
}

func TestMapSendTemplateBadJSON(t *testing.T) {
	msg := mapErr(t, ResourceWhatsAppMessage, "sendTemplate", Fields{
		"templateName":   "welcome",
		"templateParams": "{bad json",
	})
	assert.Contains(t, msg, "Invalid JSON in Template Parameters")
}

func TestMapSendMedia(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppMessage, "sendMedia", Fields{
		"phone":    "+15551234567",
		"mediaUrl": "https://cdn.example.com/a.png",
	})
	assert.Equal(t, Arguments{
		"response_format": "concise",
		"phone":           "+15551234567",
		"media_type":      "image",
		"url":             "https://cdn.example.com/a.png",
	}, call.Arguments)

	msg := mapErr(t, ResourceWhatsAppMessage, "sendMedia", Fields{
		"phone":    "+15551234567",
		"mediaUrl": "ftp://x",
	})
	assert.Contains(t, msg, "Invalid Media URL")
}

func TestMapSendInteractive(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppMessage, "sendInteractive", Fields{
		"conversationId": "c1",
		"bodyText":       "Pick one",
	})
	assert.Equal(t, "button", call.Arguments["interactive_type"])
	assert.Equal(t, "Pick one", call.Arguments["body_text"])
	data, ok := call.Arguments["interactive_data"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["buttons"], 2)

	call = mapOK(t, ResourceWhatsAppMessage, "sendInteractive", Fields{
		"conversationId":  "c1",
		"bodyText":        "Pick",
		"interactiveType": "list",
		"interactiveData": map[string]any{"sections": []any{}},
	})
	assert.Equal(t, map[string]any{"sections": []any{}}, call.Arguments["interactive_data"])
}

func TestMapMarkRead(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppInbox, "markRead", Fields{"messageIds": "a, b ,,c"})
	assert.Equal(t, []string{"a", "b", "", "c"}, call.Arguments["message_ids"])

	call = mapOK(t, ResourceWhatsAppInbox, "markRead", Fields{"messageIds": "a,,b"})
	assert.Equal(t, []string{"a", "", "b"}, call.Arguments["message_ids"])

	call = mapOK(t, ResourceWhatsAppInbox, "markRead", nil)
	assert.Equal(t, []string{""}, call.Arguments["message_ids"])
}

func TestMapOptionalSearch(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppTemplate, "list", nil)
	assert.Equal(t, Arguments{"response_format": "concise"}, call.Arguments)

	call = mapOK(t, ResourceCustomer, "list", Fields{"customerSearchQuery": "acme"})
	assert.Equal(t, "acme", call.Arguments["search"])

	call = mapOK(t, ResourceWhatsAppConversation, "searchMessages", nil)
	assert.Contains(t, call.Arguments, "query")
	assert.Equal(t, "", call.Arguments["query"])
}

func TestMapLocatorString(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppInbox, "view", Fields{"hostNumberId": "pn_42"})
	assert.Equal(t, "pn_42", call.Arguments["host_number_id"])

	call = mapOK(t, ResourceWhatsAppInbox, "view", nil)
	assert.NotContains(t, call.Arguments, "host_number_id")
}

func TestMapConversationStatus(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppConversation, "setStatus", Fields{"conversationIdGet": "c9"})
	assert.Equal(t, Arguments{
		"response_format": "concise",
		"conversation_id": "c9",
		"status":          "active",
	}, call.Arguments)
}

func TestMapContactUpdate(t *testing.T) {
	call := mapOK(t, ResourceWhatsAppContact, "update", Fields{
		"contactId":   42,
		"displayName": "Ana",
	})
	assert.Equal(t, "whatsapp_contact_update", call.Name)
	assert.Equal(t, Arguments{
		"response_format": "concise",
		"contact_id":      "42",
		"display_name":    "Ana",
	}, call.Arguments)
}

func TestMapSetupLink(t *testing.T) {
	call := mapOK(t, ResourceSetupLink, "revoke", Fields{
		"setupLinkCustomerId": "cus_1",
		"setupLinkId":         "sl_1",
	})
	assert.Equal(t, "platform_revoke_setup_link", call.Name)
	assert.Equal(t, "cus_1", call.Arguments["customer_id"])
	assert.Equal(t, "sl_1", call.Arguments["setup_link_id"])

	call = mapOK(t, ResourceSetupLink, "generate", Fields{"setupLinkCustomerId": "cus_1"})
	assert.Equal(t, "platform_generate_setup_link", call.Name)
	assert.NotContains(t, call.Arguments, "setup_link_id")
}

func TestMapNoArgs(t *testing.T) {
	for _, k := range []Key{{ResourceProject, "getInfo"}, {ResourceWhatsAppConfig, "listOverview"}} {
		call, err := Map(Request{Resource: k.Resource, Operation: k.Operation})
		require.NoError(t, err)
		assert.Equal(t, Arguments{"response_format": "concise"}, call.Arguments, k.String())
	}
}

func TestMapDoesNotMutateFields(t *testing.T) {
	fields := Fields{"conversationId": "c", "body": "b"}
	mapOK(t, ResourceWhatsAppMessage, "sendText", fields)
	assert.Len(t, fields, 2)
}
