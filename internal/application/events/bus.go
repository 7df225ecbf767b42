package events

import (
	"sort"
	"sync"
)

// Handler receives published events. Handlers run synchronously on the publishing
// goroutine and must not call back into the publisher.
type Handler func(Event)

type subscriber struct {
	handler Handler
	types   map[EventType]bool
}

func (s subscriber) wants(t EventType) bool {
	return len(s.types) == 0 || s.types[t]
}

// Bus is an in-process observer registry
type Bus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]subscriber
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]subscriber)}
}

// Subscription removes its handler when closed
type Subscription struct {
	bus  *Bus
	id   int
	once sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		delete(s.bus.subscribers, s.id)
	})
}

// Subscribe registers handler for the given event types, or for every type when none are given
func (b *Bus) Subscribe(handler Handler, types ...EventType) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	set := make(map[EventType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	b.nextID++
	b.subscribers[b.nextID] = subscriber{handler: handler, types: set}
	return &Subscription{bus: b, id: b.nextID}
}

// SubscribeChannel delivers matching events to a buffered channel. Events that
// arrive while the buffer is full are dropped. The channel is never closed.
func (b *Bus) SubscribeChannel(buffer int, types ...EventType) (<-chan Event, *Subscription) {
	ch := make(chan Event, buffer)
	sub := b.Subscribe(func(e Event) {
		select {
		case ch <- e:
		default:
		}
	}, types...)
	return ch, sub
}

// Publish delivers e to every matching subscriber in subscription order
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.subscribers))
	for id := range b.subscribers {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	sort.Ints(ids)
	for _, id := range ids {
		b.mu.RLock()
		s, ok := b.subscribers[id]
		b.mu.RUnlock()
		if ok && s.wants(e.Type) {
			s.handler(e)
		}
	}
}

func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
