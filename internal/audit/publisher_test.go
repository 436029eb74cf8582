package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossverify/pkg/requestcontext"
)

func TestPublisherStampsAndEnriches(t *testing.T) {
	store := NewMemoryStore()
	publisher := NewPublisher(store)

	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "test-agent/1.0", "Firefox 142 on Linux")

	err := publisher.Emit(ctx, Event{
		Action:     ActionVerdict,
		Subject:    "AAD-1",
		Domain:     "electricity",
		AccountKey: "ACC-001",
		Outcome:    "match",
	})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 1)
	got := events[0]

	_, parseErr := uuid.Parse(got.ID)
	assert.NoError(t, parseErr)
	assert.False(t, got.Timestamp.IsZero())
	assert.Equal(t, "req-123", got.RequestID)
	assert.Equal(t, "203.0.113.7", got.ClientIP)
	assert.Equal(t, "test-agent/1.0", got.UserAgent)
	assert.Equal(t, "Firefox 142 on Linux", got.DeviceName)
	assert.Equal(t, ActionVerdict, got.Action)
	assert.Equal(t, "ACC-001", got.AccountKey)
}

func TestPublisherKeepsExplicitStamps(t *testing.T) {
	store := NewMemoryStore()
	publisher := NewPublisher(store)

	ts := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	err := publisher.Emit(context.Background(), Event{
		ID:        "fixed-id",
		Timestamp: ts,
		Action:    ActionCodeRequested,
		Subject:   "AAD-1",
	})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "fixed-id", events[0].ID)
	assert.Equal(t, ts, events[0].Timestamp)
}

func TestMemoryStoreCopiesOut(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Append(context.Background(), Event{ID: "a", Action: ActionVerdict}))

	events := store.Events()
	events[0].ID = "mutated"

	assert.Equal(t, "a", store.Events()[0].ID)
}
