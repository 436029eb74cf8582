package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"crossverify/pkg/requestcontext"
)

// Publisher stamps and appends structured audit events. It fills identity,
// request, and client metadata from the context so emitting call sites stay
// small.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit assigns an ID and timestamp if unset, enriches the event from the
// request context, and appends it to the store.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
	if event.DeviceName == "" {
		event.DeviceName = requestcontext.DeviceName(ctx)
	}
	return p.store.Append(ctx, event)
}
