package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgigs/campusgigs-api/internal/domain"
)

func runningHub(t *testing.T, bridge Bridge) *Hub {
	t.Helper()

	hub := NewHub(bridge)
	go hub.Run()

	return hub
}

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()

	select {
	case event, ok := <-sub.Events():
		require.True(t, ok, "subscription closed")
		return event
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func TestEvent_Channel(t *testing.T) {
	event := Event{Type: EventMessageCreated, ChatID: 42}

	assert.Equal(t, "messages:42", event.Channel())
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := runningHub(t, nil)

	sub := hub.Subscribe(7)
	defer sub.Cancel()

	hub.Publish(context.Background(), Event{
		Type:    EventMessageCreated,
		ChatID:  7,
		Message: domain.Message{ID: 1, ChatID: 7},
	})

	event := receive(t, sub)
	assert.Equal(t, uint(1), event.Message.ID)
}

func TestHub_RoomsAreIsolated(t *testing.T) {
	hub := runningHub(t, nil)

	subSeven := hub.Subscribe(7)
	defer subSeven.Cancel()
	subEight := hub.Subscribe(8)
	defer subEight.Cancel()

	hub.Publish(context.Background(), Event{ChatID: 8, Message: domain.Message{ID: 2, ChatID: 8}})

	event := receive(t, subEight)
	assert.Equal(t, uint(2), event.Message.ID)

	select {
	case event := <-subSeven.Events():
		t.Fatalf("chat 7 subscriber got chat 8's event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DuplicateMessageIDsAreSuppressed(t *testing.T) {
	hub := runningHub(t, nil)

	sub := hub.Subscribe(7)
	defer sub.Cancel()

	event := Event{Type: EventMessageCreated, ChatID: 7, Message: domain.Message{ID: 5, ChatID: 7}}

	// Same message arriving twice, e.g. once locally and once via the bridge.
	hub.Publish(context.Background(), event)
	hub.ApplyRemote(event)
	hub.Publish(context.Background(), Event{Type: EventMessageCreated, ChatID: 7, Message: domain.Message{ID: 6, ChatID: 7}})

	first := receive(t, sub)
	assert.Equal(t, uint(5), first.Message.ID)

	second := receive(t, sub)
	assert.Equal(t, uint(6), second.Message.ID, "duplicate of 5 should have been dropped")
}

func TestHub_EventsArriveInPublishOrder(t *testing.T) {
	hub := runningHub(t, nil)

	sub := hub.Subscribe(7)
	defer sub.Cancel()

	for id := uint(1); id <= 5; id++ {
		hub.Publish(context.Background(), Event{ChatID: 7, Message: domain.Message{ID: id, ChatID: 7}})
	}

	for id := uint(1); id <= 5; id++ {
		event := receive(t, sub)
		assert.Equal(t, id, event.Message.ID)
	}
}

func TestSubscription_Cancel(t *testing.T) {
	hub := runningHub(t, nil)

	sub := hub.Subscribe(7)
	sub.Cancel()
	sub.Cancel() // Idempotent.

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after cancel must not panic or block.
	hub.Publish(context.Background(), Event{ChatID: 7, Message: domain.Message{ID: 9, ChatID: 7}})
}

type failingBridge struct {
	calls int
}

func (b *failingBridge) Publish(ctx context.Context, event Event) error {
	b.calls++
	return errors.New("redis down")
}

func TestHub_BridgeFailureStillDeliversLocally(t *testing.T) {
	bridge := &failingBridge{}
	hub := runningHub(t, bridge)

	sub := hub.Subscribe(7)
	defer sub.Cancel()

	hub.Publish(context.Background(), Event{ChatID: 7, Message: domain.Message{ID: 3, ChatID: 7}})

	event := receive(t, sub)
	assert.Equal(t, uint(3), event.Message.ID)
	assert.Equal(t, 1, bridge.calls)
}
