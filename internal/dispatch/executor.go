// Package dispatch runs a batch of workflow items through the request mapper
// and the MCP transport, one item at a time.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/logging"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/metrics"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
)

// Caller performs one tool call and returns the unwrapped result.
type Caller interface {
	Call(ctx context.Context, name string, args map[string]any) (any, error)
}

// Record is the output for one input item.
type Record struct {
	Item int `json:"item"`
	JSON any `json:"json"`
}

// ItemError aborts a run at the item that failed.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }

func (e *ItemError) Unwrap() error { return e.Err }

// Executor maps, calls and emits items sequentially. Without ContinueOnFail
// the first failing item stops the run; with it, the failure becomes an
// {"error": msg} record and the run goes on.
type Executor struct {
	Caller         Caller
	ContinueOnFail bool
	// ResponseFormat fills responseFormat for items that leave it unset.
	ResponseFormat string
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
}

// Run processes items for one (resource, operation) selection and returns one
// record per processed item, in input order.
func (e *Executor) Run(ctx context.Context, resource operation.Resource, op operation.Operation, items []operation.Fields) ([]Record, error) {
	log := e.Logger
	if log == nil {
		log = logging.NewNop()
	}
	log = log.With("run_id", uuid.NewString(), "resource", resource, "operation", op)
	log.Debug("run started", "items", len(items))

	records := make([]Record, 0, len(items))
	for i, fields := range items {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		result, err := e.runItem(ctx, operation.Request{Resource: resource, Operation: op, Fields: e.withFormat(fields)})
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			if !e.ContinueOnFail {
				log.Error("item failed", "item", i, "error", err)
				return records, &ItemError{Index: i, Err: err}
			}
			log.Warn("item failed, continuing", "item", i, "error", err)
			records = append(records, Record{Item: i, JSON: map[string]any{"error": err.Error()}})
			continue
		}
		records = append(records, Record{Item: i, JSON: result})
	}

	log.Debug("run finished", "records", len(records))
	return records, nil
}

func (e *Executor) runItem(ctx context.Context, req operation.Request) (any, error) {
	call, err := operation.Map(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := e.Caller.Call(ctx, call.Name, call.Arguments)
	e.Metrics.ObserveToolCall(call.Name, time.Since(start), err)
	return result, err
}

func (e *Executor) withFormat(fields operation.Fields) operation.Fields {
	if e.ResponseFormat == "" {
		return fields
	}
	if v, ok := fields["responseFormat"]; ok && v != nil && v != "" {
		return fields
	}
	out := make(operation.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["responseFormat"] = e.ResponseFormat
	return out
}
