// Package mcpserver republishes the operation catalog as a local MCP server,
// one tool per (resource, operation) pair, proxied to Kapso.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/dispatch"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/logging"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/metrics"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
)

// Server wraps an MCP server whose tools run through the dispatch executor.
type Server struct {
	caller    dispatch.Caller
	logger    *slog.Logger
	metrics   *metrics.Metrics
	mcpServer *server.MCPServer
}

// New creates a Server with every catalog operation registered.
func New(caller dispatch.Caller, version string, logger *slog.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		caller:    caller,
		logger:    logger,
		metrics:   m,
		mcpServer: server.NewMCPServer("kapso-mcp", version),
	}
	for _, t := range Tools() {
		s.mcpServer.AddTool(t.Tool, s.handler(t.Key))
	}
	return s
}

// ServeStdio serves on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool pairs an MCP tool definition with the operation it runs.
type Tool struct {
	Key  operation.Key
	Tool mcp.Tool
}

// ToolName is the local tool name for k.
func ToolName(k operation.Key) string {
	return fmt.Sprintf("%s_%s", k.Resource, k.Operation)
}

// Tools builds a tool definition for every catalog operation.
func Tools() []Tool {
	var tools []Tool
	for _, res := range operation.Resources {
		for _, op := range res.Operations {
			key := operation.Key{Resource: res.Resource, Operation: op.Operation}
			opts := []mcp.ToolOption{mcp.WithDescription(op.Description)}
			for _, f := range operation.FieldsFor(key) {
				opts = append(opts, mcp.WithString(f.Name, propertyOptions(f)...))
			}
			tools = append(tools, Tool{Key: key, Tool: mcp.NewTool(ToolName(key), opts...)})
		}
	}
	return tools
}

func propertyOptions(f operation.Field) []mcp.PropertyOption {
	desc := f.DisplayName
	if f.Description != "" {
		desc += ": " + f.Description
	}
	opts := []mcp.PropertyOption{mcp.Description(desc)}
	if f.Required {
		opts = append(opts, mcp.Required())
	}
	if len(f.Options) > 0 {
		opts = append(opts, mcp.Enum(f.Options...))
	}
	if d, ok := f.Default.(string); ok && d != "" {
		opts = append(opts, mcp.DefaultString(d))
	}
	return opts
}

func (s *Server) handler(key operation.Key) server.ToolHandlerFunc {
	exec := &dispatch.Executor{Caller: s.caller, Logger: s.logger, Metrics: s.metrics}
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fields := operation.Fields(req.GetArguments())
		records, err := exec.Run(ctx, key.Resource, key.Operation, []operation.Fields{fields})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := json.Marshal(records[0].JSON)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
