// Package idempotency suppresses webhook deliveries that Kapso retries with
// the same idempotency key.
package idempotency

import "context"

// Store marks keys as seen.
type Store interface {
	// Seen records key and reports whether it had already been recorded.
	Seen(ctx context.Context, key string) (bool, error)
}
