package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
)

type fakeCaller struct {
	name string
	args map[string]any
	err  error
}

func (f *fakeCaller) Call(_ context.Context, name string, args map[string]any) (any, error) {
	f.name, f.args = name, args
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"sent": true}, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestToolsCoverCatalog(t *testing.T) {
	tools := Tools()
	assert.Len(t, tools, len(operation.Keys()))

	var sendText mcp.Tool
	for _, tl := range tools {
		if tl.Tool.Name == "whatsappMessage_sendText" {
			sendText = tl.Tool
		}
	}
	require.Equal(t, "whatsappMessage_sendText", sendText.Name)
	assert.Contains(t, sendText.InputSchema.Properties, "body")
	assert.Contains(t, sendText.InputSchema.Properties, "phone")
	assert.Contains(t, sendText.InputSchema.Required, "body")
}

func TestHandlerProxiesCall(t *testing.T) {
	f := &fakeCaller{}
	s := New(f, "test", nil, nil)
	h := s.handler(operation.Key{Resource: operation.ResourceWhatsAppMessage, Operation: "sendText"})

	res, err := h(context.Background(), callRequest(map[string]any{"phone": "+15551234567", "body": "hi"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"sent":true}`, textOf(t, res))
	assert.Equal(t, "whatsapp_send_text_message", f.name)
	assert.Equal(t, "hi", f.args["body"])
}

func TestHandlerReportsErrorsAsToolErrors(t *testing.T) {
	s := New(&fakeCaller{}, "test", nil, nil)
	h := s.handler(operation.Key{Resource: operation.ResourceWhatsAppMessage, Operation: "sendText"})
	res, err := h(context.Background(), callRequest(map[string]any{"body": "hi"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "Either Conversation ID or Phone Number is required")

	s = New(&fakeCaller{err: errors.New("kapso down")}, "test", nil, nil)
	h = s.handler(operation.Key{Resource: operation.ResourceProject, Operation: "getInfo"})
	res, err = h(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "kapso down")
}
