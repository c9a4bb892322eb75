package idempotency

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store. The whole set is dropped on every cleanup
// tick, so a key is remembered for between one and two intervals.
type Memory struct {
	seen sync.Map
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	_, loaded := m.seen.LoadOrStore(key, struct{}{})
	return loaded, nil
}

// StartCleanup clears the set every interval until ctx is done.
func (m *Memory) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Clear()
		}
	}
}

// Clear forgets every key.
func (m *Memory) Clear() {
	m.seen.Range(func(key, _ any) bool {
		m.seen.Delete(key)
		return true
	})
}
