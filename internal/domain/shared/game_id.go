package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// GameID is a value object identifying one game session.
// Resetting a game starts a new session with a new ID.
type GameID struct {
	value string
}

// NewGameID creates a new GameID with a generated UUID
func NewGameID() GameID {
	return GameID{value: uuid.New().String()}
}

// NewGameIDFromString creates a GameID from an existing UUID string
func NewGameIDFromString(id string) (GameID, error) {
	if id == "" {
		return GameID{}, fmt.Errorf("game_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return GameID{}, fmt.Errorf("invalid game_id format: %w", err)
	}
	return GameID{value: id}, nil
}

// MustNewGameIDFromString creates a GameID from a string, panicking if invalid.
// Use this only for IDs read back from the database.
func MustNewGameIDFromString(id string) GameID {
	gid, err := NewGameIDFromString(id)
	if err != nil {
		panic(err)
	}
	return gid
}

func (g GameID) String() string {
	return g.value
}

func (g GameID) Equals(other GameID) bool {
	return g.value == other.value
}

func (g GameID) IsZero() bool {
	return g.value == ""
}
