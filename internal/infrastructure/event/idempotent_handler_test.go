package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeIdempotencyStore is an in-memory IdempotencyStore for tests
type fakeIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.seen[eventID] {
		return false, nil
	}
	s.seen[eventID] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[eventID], s.err
}

func (s *fakeIdempotencyStore) Close() error {
	return nil
}

var _ shared.IdempotencyStore = (*fakeIdempotencyStore)(nil)

func TestIdempotentHandler_ProcessesFirstDelivery(t *testing.T) {
	inner := newTestHandler("TestEvent")
	store := newFakeIdempotencyStore()
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	err := handler.Handle(context.Background(), newTestEvent("TestEvent"))

	require.NoError(t, err)
	assert.Len(t, inner.getHandled(), 1)
	assert.Equal(t, int64(1), handler.GetMetrics().Stats().EventsProcessed)
}

func TestIdempotentHandler_SkipsDuplicateDelivery(t *testing.T) {
	inner := newTestHandler("TestEvent")
	store := newFakeIdempotencyStore()
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	event := newTestEvent("TestEvent")
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Len(t, inner.getHandled(), 1)
	stats := handler.GetMetrics().Stats()
	assert.Equal(t, int64(1), stats.EventsProcessed)
	assert.Equal(t, int64(1), stats.EventsDuplicate)
}

func TestIdempotentHandler_StoreFailureStillProcesses(t *testing.T) {
	inner := newTestHandler("TestEvent")
	store := newFakeIdempotencyStore()
	store.err = errors.New("store unavailable")
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	err := handler.Handle(context.Background(), newTestEvent("TestEvent"))

	require.NoError(t, err)
	assert.Len(t, inner.getHandled(), 1)
}

func TestIdempotentHandler_HandlerErrorPropagates(t *testing.T) {
	inner := newTestHandler("TestEvent")
	inner.setError(errors.New("handler failed"))
	store := newFakeIdempotencyStore()
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	err := handler.Handle(context.Background(), newTestEvent("TestEvent"))

	require.Error(t, err)
	assert.Equal(t, int64(1), handler.GetMetrics().Stats().EventsFailed)
}

func TestIdempotentHandler_DisabledBypassesStore(t *testing.T) {
	inner := newTestHandler("TestEvent")
	store := newFakeIdempotencyStore()
	handler := NewIdempotentHandler(inner, store, zap.NewNop(),
		WithIdempotencyConfig(shared.IdempotencyConfig{Enabled: false}),
	)

	event := newTestEvent("TestEvent")
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))

	// Without the store both deliveries go through
	assert.Len(t, inner.getHandled(), 2)
	assert.Empty(t, store.seen)
}

func TestIdempotentHandler_EventTypesDelegates(t *testing.T) {
	inner := newTestHandler("EventA", "EventB")
	handler := NewIdempotentHandler(inner, newFakeIdempotencyStore(), zap.NewNop())

	assert.Equal(t, []string{"EventA", "EventB"}, handler.EventTypes())
	assert.Same(t, inner, handler.GetWrappedHandler().(*testHandler))
}

func TestWrapHandlersWithIdempotency(t *testing.T) {
	store := newFakeIdempotencyStore()
	metrics := &IdempotencyMetrics{}
	handlers := []shared.EventHandler{
		newTestHandler("EventA"),
		newTestHandler("EventB"),
	}

	wrapped := WrapHandlersWithIdempotency(handlers, store, zap.NewNop(),
		WithIdempotencyMetrics(metrics),
	)

	require.Len(t, wrapped, 2)
	for _, h := range wrapped {
		idem, ok := h.(*IdempotentHandler)
		require.True(t, ok)
		assert.Same(t, metrics, idem.GetMetrics())
	}
}
