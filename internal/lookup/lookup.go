// Package lookup resolves the searchable option lists offered for
// template names, customer ids and host numbers.
package lookup

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Option is one selectable entry.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Caller issues a single MCP tool call and returns the raw response.
type Caller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)
}

// Resolver runs lookups against a Caller.
type Resolver struct {
	caller Caller
}

// New creates a Resolver.
func New(c Caller) *Resolver {
	return &Resolver{caller: c}
}

// Templates lists approved templates matching filter.
func (r *Resolver) Templates(ctx context.Context, filter string) ([]Option, error) {
	items, err := r.fetch(ctx, "whatsapp_templates", map[string]any{"search": filter}, "templates")
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(items))
	for _, t := range items {
		name := t.Get("name").String()
		label := name
		if lang := t.Get("language").String(); lang != "" {
			label = name + " (" + lang + ")"
		}
		opts = append(opts, Option{Name: label, Value: name})
	}
	return opts, nil
}

// Customers lists customers matching filter.
func (r *Resolver) Customers(ctx context.Context, filter string) ([]Option, error) {
	items, err := r.fetch(ctx, "platform_list_customers", map[string]any{"search": filter}, "customers")
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(items))
	for _, c := range items {
		opts = append(opts, Option{Name: c.Get("name").String(), Value: c.Get("id").String()})
	}
	return opts, nil
}

// WhatsAppConfigs lists the project's host numbers.
func (r *Resolver) WhatsAppConfigs(ctx context.Context) ([]Option, error) {
	items, err := r.fetch(ctx, "whatsapp_configs_overview", map[string]any{}, "configs")
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(items))
	for _, c := range items {
		id := c.Get("id").String()
		name := firstNonEmpty(c.Get("display_name").String(), c.Get("phone_number").String(), id)
		opts = append(opts, Option{Name: name, Value: id})
	}
	return opts, nil
}

func (r *Resolver) fetch(ctx context.Context, tool string, args map[string]any, key string) ([]gjson.Result, error) {
	args["response_format"] = "detailed"
	raw, err := r.caller.CallTool(ctx, tool, args)
	if err != nil {
		return nil, err
	}
	return entries(raw, key), nil
}

// entries reads the JSON text carried in result.content[0].text. The text may
// hold a bare array or an object wrapping the array under key. Anything else
// yields no entries.
func entries(raw []byte, key string) []gjson.Result {
	text := gjson.GetBytes(raw, "result.content.0.text").String()
	if text == "" {
		text = "[]"
	}
	if !gjson.Valid(text) {
		return nil
	}
	parsed := gjson.Parse(text)
	if parsed.IsObject() {
		parsed = parsed.Get(key)
	}
	if !parsed.IsArray() {
		return nil
	}
	return parsed.Array()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
