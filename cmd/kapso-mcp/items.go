package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
)

// readItems loads workflow items from a YAML or JSON file. The file holds
// either a list of field maps or a single map.
func readItems(path string) ([]operation.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return parseItems(data)
}

func parseItems(data []byte) ([]operation.Fields, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		var items []map[string]any
		if err := node.Decode(&items); err != nil {
			return nil, fmt.Errorf("parse items: %w", err)
		}
		out := make([]operation.Fields, len(items))
		for i, it := range items {
			// A null entry is an item with no fields.
			if it == nil {
				it = map[string]any{}
			}
			out[i] = operation.Fields(it)
		}
		return out, nil
	case yaml.MappingNode:
		var item map[string]any
		if err := node.Decode(&item); err != nil {
			return nil, fmt.Errorf("parse items: %w", err)
		}
		if item == nil {
			item = map[string]any{}
		}
		return []operation.Fields{item}, nil
	default:
		return nil, fmt.Errorf("parse items: expected a list or a map of fields")
	}
}

// applySets overlays key=value pairs onto every item. With no items, the
// pairs form a single item.
func applySets(items []operation.Fields, sets []string) ([]operation.Fields, error) {
	overlay := operation.Fields{}
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", s)
		}
		overlay[strings.TrimSpace(k)] = v
	}

	if len(items) == 0 {
		return []operation.Fields{overlay}, nil
	}
	for i, it := range items {
		if it == nil {
			it = operation.Fields{}
			items[i] = it
		}
		for k, v := range overlay {
			it[k] = v
		}
	}
	return items, nil
}
