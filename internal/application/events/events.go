package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventType identifies a game notification
type EventType string

const (
	EventTypeBalanceChanged      EventType = "BALANCE_CHANGED"
	EventTypeBankruptcy          EventType = "BANKRUPTCY"
	EventTypeStateChanged        EventType = "STATE_CHANGED"
	EventTypeRoundStarted        EventType = "ROUND_STARTED"
	EventTypeRoundEnded          EventType = "ROUND_ENDED"
	EventTypeTimerTick           EventType = "TIMER_TICK"
	EventTypeWantedListUpdated   EventType = "WANTED_LIST_UPDATED"
	EventTypeGameOver            EventType = "GAME_OVER"
	EventTypeDronePurchased      EventType = "DRONE_PURCHASED"
	EventTypeDroneIdentification EventType = "DRONE_IDENTIFICATION"
	EventTypeArrestResolved      EventType = "ARREST_RESOLVED"
	EventTypePlayerTargeted      EventType = "PLAYER_TARGETED"
	EventTypeCommendationAwarded EventType = "COMMENDATION_AWARDED"
)

// AllEventTypes lists every notification kind
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeBalanceChanged,
		EventTypeBankruptcy,
		EventTypeStateChanged,
		EventTypeRoundStarted,
		EventTypeRoundEnded,
		EventTypeTimerTick,
		EventTypeWantedListUpdated,
		EventTypeGameOver,
		EventTypeDronePurchased,
		EventTypeDroneIdentification,
		EventTypeArrestResolved,
		EventTypePlayerTargeted,
		EventTypeCommendationAwarded,
	}
}

func (t EventType) String() string {
	return string(t)
}

// Event is one notification published by a game session
type Event struct {
	Type      EventType   `json:"type"`
	GameID    string      `json:"game_id"`
	Round     int         `json:"round"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Fields flattens the event into a JSON-compatible map for transports
func (e Event) Fields() (map[string]interface{}, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Payloads

type BalanceChangedPayload struct {
	TransactionType string  `json:"transaction_type,omitempty"`
	Amount          float64 `json:"amount"`
	Before          float64 `json:"before"`
	After           float64 `json:"after"`
	Description     string  `json:"description"`
}

type BankruptcyPayload struct {
	Balance   float64 `json:"balance"`
	Threshold float64 `json:"threshold"`
}

type StateChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type RoundStartedPayload struct {
	Round           int     `json:"round"`
	WantedCount     int     `json:"wanted_count"`
	RequiredArrests int     `json:"required_arrests"`
	DurationSeconds float64 `json:"duration_seconds"`
	CrowdSize       int     `json:"crowd_size"`
}

type RoundEndedPayload struct {
	Round           int     `json:"round"`
	Arrests         int     `json:"arrests"`
	TotalSuspects   int     `json:"total_suspects"`
	RequiredArrests int     `json:"required_arrests"`
	Balance         float64 `json:"balance"`
	Reason          string  `json:"reason"`
	NextState       string  `json:"next_state"`
}

type TimerTickPayload struct {
	RemainingSeconds float64 `json:"remaining_seconds"`
}

// WantedEntry is the presentation view of one wanted record
type WantedEntry struct {
	Name     string `json:"name"`
	Visual   string `json:"visual"`
	Class    string `json:"class"`
	SubClass int    `json:"sub_class"`
}

type WantedListUpdatedPayload struct {
	Entries     []WantedEntry  `json:"entries"`
	ClassCounts map[string]int `json:"class_counts"`
}

type GameOverPayload struct {
	Reason  string  `json:"reason"`
	Round   int     `json:"round"`
	Balance float64 `json:"balance"`
	Won     bool    `json:"won"`
}

type DronePurchasedPayload struct {
	DroneID  int     `json:"drone_id"`
	Cost     float64 `json:"cost"`
	Accuracy float64 `json:"accuracy"`
	NextCost float64 `json:"next_cost"`
}

type DroneIdentificationPayload struct {
	DroneID               int         `json:"drone_id"`
	SightingID            string      `json:"sighting_id,omitempty"`
	ReportedAs            WantedEntry `json:"reported_as"`
	TargetsPlayer         bool        `json:"targets_player"`
	ResponseWindowSeconds float64     `json:"response_window_seconds"`
}

type ArrestResolvedPayload struct {
	Outcome       string `json:"outcome"`
	SightingID    string `json:"sighting_id,omitempty"`
	Name          string `json:"name,omitempty"`
	DroneID       int    `json:"drone_id,omitempty"`
	AutoConfirmed bool   `json:"auto_confirmed"`
}

type PlayerTargetedPayload struct {
	Drones int `json:"drones"`
}

type CommendationAwardedPayload struct {
	Round int    `json:"round"`
	Title string `json:"title"`
}

// ParseEventTypes resolves event names case-insensitively. An empty list means every type.
func ParseEventTypes(names []string) ([]EventType, error) {
	known := make(map[EventType]bool)
	for _, t := range AllEventTypes() {
		known[t] = true
	}

	types := make([]EventType, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t := EventType(strings.ToUpper(name))
		if !known[t] {
			return nil, fmt.Errorf("unknown event type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}
