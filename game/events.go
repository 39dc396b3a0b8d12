// File: game/events.go
package game

import (
	"github.com/google/uuid"
)

// EventKind names a gameplay event.
type EventKind string

const (
	EventBrickDestroyed EventKind = "brick_destroyed"
	EventBallLost       EventKind = "ball_lost"
	EventLifeLost       EventKind = "life_lost"
	EventRoundCleared   EventKind = "round_cleared"
	EventGameOver       EventKind = "game_over"
	EventGameWon        EventKind = "game_won"
	EventPowerUpSpawned EventKind = "power_up_spawned"
	EventPowerUpCaught  EventKind = "power_up_caught"
	EventScoreChanged   EventKind = "score_changed"
	EventLaserFired     EventKind = "laser_fired"
)

// Event is published on the game's event bus. Only the fields relevant to
// the kind are set.
type Event struct {
	Kind    EventKind
	Brick   *Brick
	Ball    *Ball
	PowerUp *PowerUp
	Score   int
	Lives   int
	Round   int
}

// Handler receives published events. Handlers run synchronously on the
// game loop goroutine and must not block.
type Handler func(Event)

// Subscription identifies one registered handler so it can be removed.
type Subscription string

type subscriber struct {
	token   Subscription
	handler Handler
}

// EventBus is a synchronous publish/subscribe hub for gameplay events. It
// is confined to the game loop goroutine and is not safe for concurrent
// use.
type EventBus struct {
	subscribers map[EventKind][]subscriber
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[EventKind][]subscriber)}
}

// Subscribe registers a handler for one event kind and returns a token for
// Unsubscribe. Handlers for the same kind run in subscription order.
func (b *EventBus) Subscribe(kind EventKind, handler Handler) Subscription {
	token := Subscription(uuid.NewString())
	b.subscribers[kind] = append(b.subscribers[kind], subscriber{token: token, handler: handler})
	return token
}

// Unsubscribe removes the handler registered under token. Unknown tokens
// are ignored.
func (b *EventBus) Unsubscribe(token Subscription) {
	for kind, subs := range b.subscribers {
		for i, s := range subs {
			if s.token == token {
				b.subscribers[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every handler subscribed to its kind. The
// subscriber list is snapshotted first, so handlers may subscribe or
// unsubscribe during delivery without affecting the current dispatch.
func (b *EventBus) Publish(event Event) {
	subs := b.subscribers[event.Kind]
	snapshot := make([]subscriber, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.handler(event)
	}
}
