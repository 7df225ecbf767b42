package game

import (
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/drone"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
)

// DefaultPlayerName is the identity drones report when they turn on the player
const DefaultPlayerName = "Officer #7482"

// Config gathers every tuning value of a game session
type Config struct {
	Roster roster.GeneratorConfig
	Ledger ledger.Config
	Round  round.Config
	Fleet  drone.FleetConfig

	// CrowdSize is the number of random bystanders spawned each round, on top of the wanted persons
	CrowdSize int

	// CommendationRound is the round whose successful completion earns a commendation. 0 disables it.
	CommendationRound int

	// BetrayalRound is the round after which drones turn on the player. 0 disables it.
	BetrayalRound int

	// BetrayalDelay is how long into the following round the drones wait before targeting the player
	BetrayalDelay time.Duration

	PlayerName string
}

// DefaultConfig returns the standard game tuning
func DefaultConfig() Config {
	return Config{
		Roster:            roster.DefaultGeneratorConfig(),
		Ledger:            ledger.DefaultConfig(),
		Round:             round.DefaultConfig(),
		Fleet:             drone.DefaultFleetConfig(),
		CrowdSize:         20,
		CommendationRound: 3,
		BetrayalRound:     4,
		BetrayalDelay:     30 * time.Second,
		PlayerName:        DefaultPlayerName,
	}
}
