package helpers

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
)

// ScriptedRandom replays fixed values and then repeats the last one.
// An empty script yields zero.
type ScriptedRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

func NewScriptedRandom(floats []float64, ints []int) *ScriptedRandom {
	return &ScriptedRandom{floats: floats, ints: ints}
}

func (r *ScriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *ScriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

// CatalogWithClasses builds a catalog of the first n classes with subClasses variants each
func CatalogWithClasses(n, subClasses int) *roster.Catalog {
	var records []roster.PersonRecord
	for i, class := range roster.AllClasses() {
		if i >= n {
			break
		}
		for sub := 1; sub <= subClasses; sub++ {
			records = append(records, roster.MustNewPersonRecord(
				fmt.Sprintf("Person %s-%d", class, sub),
				fmt.Sprintf("visual_%s%d", class, sub),
				class,
				sub,
			))
		}
	}
	return roster.NewCatalog(records)
}

// EventRecorder collects every notification published on a bus
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
	sub    *events.Subscription
}

// NewEventRecorder subscribes a recorder to bus
func NewEventRecorder(bus *events.Bus) *EventRecorder {
	r := &EventRecorder{}
	r.sub = bus.Subscribe(r.record)
	return r
}

func (r *EventRecorder) record(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of type t were recorded
func (r *EventRecorder) Count(t events.EventType) int {
	n := 0
	for _, e := range r.Events() {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Last returns the most recent event of type t
func (r *EventRecorder) Last(t events.EventType) (events.Event, bool) {
	all := r.Events()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Type == t {
			return all[i], true
		}
	}
	return events.Event{}, false
}

// Reset forgets everything recorded so far
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Close unsubscribes the recorder
func (r *EventRecorder) Close() {
	r.sub.Close()
}
