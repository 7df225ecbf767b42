package config

import (
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/application/simulation"
)

// SimulationConfig tunes the headless bot that plays games end to end
type SimulationConfig struct {
	// Games is the number of consecutive games to play
	Games int `mapstructure:"games" validate:"min=1"`

	// TimeStep is the game time advanced per simulation step
	TimeStep time.Duration `mapstructure:"time_step" validate:"gt=0"`

	// ActionsPerSecond limits how often the bot acts, in game time
	ActionsPerSecond float64 `mapstructure:"actions_per_second" validate:"gt=0"`
	Burst            int     `mapstructure:"burst" validate:"min=1"`

	// ArrestAccuracy is the probability the bot recognizes a wanted person it looks at
	ArrestAccuracy float64 `mapstructure:"arrest_accuracy" validate:"gt=0,lte=1"`

	// BuyDrones lets the bot spend surplus balance on drones between rounds
	BuyDrones bool `mapstructure:"buy_drones"`
	// Reserve is the balance the bot keeps untouched when buying drones
	Reserve float64 `mapstructure:"reserve" validate:"gte=0"`
}

// BotConfig converts the section into bot tuning
func (c SimulationConfig) BotConfig() simulation.BotConfig {
	return simulation.BotConfig{
		ActionsPerSecond: c.ActionsPerSecond,
		Burst:            c.Burst,
		ArrestAccuracy:   c.ArrestAccuracy,
		BuyDrones:        c.BuyDrones,
		Reserve:          c.Reserve,
	}
}

// RunnerConfig converts the section into runner settings
func (c SimulationConfig) RunnerConfig() simulation.RunnerConfig {
	return simulation.RunnerConfig{
		Games:    c.Games,
		TimeStep: c.TimeStep,
	}
}
