// Package event carries in-process change notifications from the ledger
// services to the derived views. Publishing happens strictly after a
// successful commit, so subscribers always observe fully-applied state.
package event

import (
	"sync"
	"time"
)

// Topics, one per stream feeding a derived view.
const (
	TopicSales    = "sales"
	TopicPractice = "practice"
	TopicPayments = "payments"
	TopicPools    = "pools"
)

// Event describes one committed change to a stream.
type Event struct {
	Topic  string    `json:"topic"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Handler receives events synchronously; it must not block. Slow consumers
// hand off to their own goroutine (see DebtService).
type Handler func(Event)

// Bus is a minimal fan-out publisher. Channel subscribers (the SSE stream)
// get a buffered channel and are dropped-to rather than blocked-on when full.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	chans    map[int]chan Event
	nextID   int
}

func NewBus() *Bus {
	return &Bus{chans: make(map[int]chan Event)}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// SubscribeChan registers a channel subscriber and returns the channel plus a
// cancel func that must be called when the consumer goes away.
func (b *Bus) SubscribeChan() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.chans[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.chans[id]; ok {
			delete(b.chans, id)
			close(c)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(topic, action string) {
	e := Event{Topic: topic, Action: action, At: time.Now()}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.handlers {
		h(e)
	}
	for _, ch := range b.chans {
		select {
		case ch <- e:
		default: // slow SSE client, drop rather than stall the publisher
		}
	}
}
