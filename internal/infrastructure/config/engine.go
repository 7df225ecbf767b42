package config

import (
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/domain/drone"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
)

// EngineConfig converts the game and crowd sections into engine tuning
func (c *Config) EngineConfig() game.Config {
	g := c.Game
	return game.Config{
		Roster: roster.GeneratorConfig{
			BaseWanted:      g.BaseWanted,
			WantedIncrement: g.WantedIncrement,
		},
		Ledger: ledger.Config{
			StartingBalance:     g.StartingBalance,
			ArrestReward:        g.ArrestReward,
			WrongArrestPenalty:  g.WrongArrestPenalty,
			BankruptcyThreshold: g.BankruptcyThreshold,
		},
		Round: round.Config{
			RoundDuration: g.RoundDuration,
			MaxRounds:     g.MaxRounds,
			QuotaFraction: g.QuotaFraction,
		},
		Fleet: drone.FleetConfig{
			BaseCost:         g.DroneBaseCost,
			CostMultiplier:   g.DroneCostMultiplier,
			BaseAccuracy:     g.BaseAccuracy,
			AccuracyDecrease: g.AccuracyDecrease,
			MinAccuracy:      g.MinAccuracy,
			Agent: drone.AgentConfig{
				ScanInterval:   g.ScanInterval,
				ResponseWindow: g.ResponseWindow,
				WarmupDelay:    g.WarmupDelay,
				RetryDelay:     g.RetryDelay,
			},
		},
		CrowdSize:         c.Crowd.Size,
		CommendationRound: g.CommendationRound,
		BetrayalRound:     g.BetrayalRound,
		BetrayalDelay:     g.BetrayalDelay,
		PlayerName:        g.PlayerName,
	}
}
