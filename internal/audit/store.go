package audit

import "context"

// Store is an append-only sink for audit events. Swap with concrete storage
// without touching publishers.
type Store interface {
	Append(ctx context.Context, event Event) error
}
