package realtime

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/campusgigs/campusgigs-api/internal/domain"
)

const EventMessageCreated = "message.created"

// Event is one realtime notification on a chat channel. Channel names follow
// the "messages:{chatID}" convention.
type Event struct {
	Type    string         `json:"type"`
	ChatID  uint           `json:"chat_id"`
	Message domain.Message `json:"message"`
}

func (e Event) Channel() string {
	return fmt.Sprintf("messages:%d", e.ChatID)
}

// Subscription is a cancelable handle on one chat's event stream.
//
// Delivery is append-only in arrival order; events are NOT re-sorted against
// message creation time under concurrent multi-sender bursts. Duplicate
// deliveries of the same message id are suppressed, so applying events
// verbatim is safe even when a sender sees its own message echoed back.
type Subscription struct {
	chatID uint
	events chan Event
	hub    *Hub

	// seen is touched only from the hub loop.
	seen map[uint]bool

	cancelOnce sync.Once
}

func (s *Subscription) ChatID() uint {
	return s.chatID
}

// Events yields decorated messages as they arrive. The channel is closed on
// Cancel or when the subscriber falls too far behind.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Cancel() {
	s.cancelOnce.Do(func() {
		s.hub.unregister <- s
	})
}

// Bridge fans events out to other instances. The hub works without one.
type Bridge interface {
	Publish(ctx context.Context, event Event) error
}

// Hub routes chat events to local subscriptions, one room per chat.
type Hub struct {
	rooms      map[uint]map[*Subscription]bool
	register   chan *Subscription
	unregister chan *Subscription
	events     chan Event
	bridge     Bridge
}

func NewHub(bridge Bridge) *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Subscription]bool),
		register:   make(chan *Subscription),
		unregister: make(chan *Subscription),
		events:     make(chan Event, 64),
		bridge:     bridge,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			if h.rooms[sub.chatID] == nil {
				h.rooms[sub.chatID] = make(map[*Subscription]bool)
			}
			h.rooms[sub.chatID][sub] = true
		case sub := <-h.unregister:
			if room, ok := h.rooms[sub.chatID]; ok {
				if room[sub] {
					delete(room, sub)
					close(sub.events)
				}
				if len(room) == 0 {
					delete(h.rooms, sub.chatID)
				}
			}
		case event := <-h.events:
			h.dispatch(event)
		}
	}
}

func (h *Hub) dispatch(event Event) {
	for sub := range h.rooms[event.ChatID] {
		if sub.seen[event.Message.ID] {
			continue
		}
		sub.seen[event.Message.ID] = true

		select {
		case sub.events <- event:
		default:
			// Slow consumer; drop it rather than block the hub.
			delete(h.rooms[event.ChatID], sub)
			close(sub.events)
		}
	}
}

// Subscribe opens a subscription on the chat's channel. Callers own the
// returned handle and must Cancel it when done.
func (h *Hub) Subscribe(chatID uint) *Subscription {
	sub := &Subscription{
		chatID: chatID,
		events: make(chan Event, 16),
		hub:    h,
		seen:   make(map[uint]bool),
	}
	h.register <- sub

	return sub
}

// Publish delivers the event to local subscribers and, when a bridge is
// configured, to subscribers on other instances. Bridge failures are logged,
// not surfaced; local delivery already happened.
func (h *Hub) Publish(ctx context.Context, event Event) {
	if h.bridge != nil {
		if err := h.bridge.Publish(ctx, event); err != nil {
			zap.L().Warn("realtime bridge publish failed",
				zap.String("channel", event.Channel()),
				zap.Error(err),
			)
		}
	}

	h.events <- event
}

// ApplyRemote feeds an event received from the bridge into local rooms only,
// so bridged events don't bounce back out.
func (h *Hub) ApplyRemote(event Event) {
	h.events <- event
}
