package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(func(Event) { order = append(order, "first") })
	bus.Subscribe(func(Event) { order = append(order, "second") })

	bus.Publish(Event{Type: EventTypeTimerTick})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_FiltersByType(t *testing.T) {
	bus := NewBus()
	var got []EventType
	bus.Subscribe(func(e Event) { got = append(got, e.Type) }, EventTypeRoundStarted, EventTypeGameOver)

	bus.Publish(Event{Type: EventTypeTimerTick})
	bus.Publish(Event{Type: EventTypeRoundStarted})
	bus.Publish(Event{Type: EventTypeGameOver})

	assert.Equal(t, []EventType{EventTypeRoundStarted, EventTypeGameOver}, got)
}

func TestBus_CloseUnsubscribes(t *testing.T) {
	bus := NewBus()
	count := 0
	sub := bus.Subscribe(func(Event) { count++ })

	bus.Publish(Event{Type: EventTypeTimerTick})
	sub.Close()
	sub.Close()
	bus.Publish(Event{Type: EventTypeTimerTick})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestBus_HandlerMayUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	var sub *Subscription
	calls := 0
	sub = bus.Subscribe(func(Event) {
		calls++
		sub.Close()
	})

	bus.Publish(Event{Type: EventTypeTimerTick})
	bus.Publish(Event{Type: EventTypeTimerTick})
	assert.Equal(t, 1, calls)
}

func TestBus_ChannelSubscriptionDropsWhenFull(t *testing.T) {
	bus := NewBus()
	ch, sub := bus.SubscribeChannel(1)
	defer sub.Close()

	bus.Publish(Event{Type: EventTypeRoundStarted})
	bus.Publish(Event{Type: EventTypeRoundEnded})

	require.Len(t, ch, 1)
	assert.Equal(t, EventTypeRoundStarted, (<-ch).Type)
}

func TestEvent_Fields(t *testing.T) {
	e := Event{
		Type:    EventTypeDronePurchased,
		GameID:  "g-1",
		Round:   2,
		Payload: DronePurchasedPayload{DroneID: 3, Cost: 33.75, Accuracy: 0.55},
	}

	fields, err := e.Fields()
	require.NoError(t, err)
	assert.Equal(t, "DRONE_PURCHASED", fields["type"])
	payload := fields["payload"].(map[string]interface{})
	assert.Equal(t, float64(3), payload["drone_id"])
	assert.Equal(t, 33.75, payload["cost"])
}

func TestParseEventTypes(t *testing.T) {
	types, err := ParseEventTypes([]string{"round_started", " GAME_OVER ", ""})
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventTypeRoundStarted, EventTypeGameOver}, types)

	types, err = ParseEventTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, types)

	_, err = ParseEventTypes([]string{"SOLAR_FLARE"})
	assert.ErrorContains(t, err, "SOLAR_FLARE")
}
