package delivery

import (
	"context"
	"errors"
	"sync"
)

// Fanout emits every record to all of its sinks concurrently and waits for
// them. Errors from individual sinks are joined.
type Fanout struct {
	Sinks []Sink
}

func (f *Fanout) Emit(ctx context.Context, rec Record) error {
	if len(f.Sinks) == 1 {
		return f.Sinks[0].Emit(ctx, rec)
	}

	errs := make([]error, len(f.Sinks))
	var wg sync.WaitGroup
	for i, s := range f.Sinks {
		wg.Add(1)
		go func(i int, s Sink) {
			defer wg.Done()
			errs[i] = s.Emit(ctx, rec)
		}(i, s)
	}
	wg.Wait()
	return errors.Join(errs...)
}
