package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Record is one workflow record, as emitted by the trigger.
type Record map[string]any

// Event returns the record's event name, if any.
func (r Record) Event() string {
	s, _ := r["event"].(string)
	return s
}

// Sink receives emitted records.
type Sink interface {
	Emit(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, rec Record) error

func (f SinkFunc) Emit(ctx context.Context, rec Record) error { return f(ctx, rec) }

// Writer writes each record as one JSON line.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

func (w *Writer) Emit(_ context.Context, rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
