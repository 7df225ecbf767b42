package config

import "time"

// GameConfig holds every tuning value of a game session
type GameConfig struct {
	// Economy
	StartingBalance     float64 `mapstructure:"starting_balance"`
	ArrestReward        float64 `mapstructure:"arrest_reward" validate:"gte=0"`
	WrongArrestPenalty  float64 `mapstructure:"wrong_arrest_penalty" validate:"gte=0"`
	BankruptcyThreshold float64 `mapstructure:"bankruptcy_threshold"`

	// Rounds
	RoundDuration time.Duration `mapstructure:"round_duration" validate:"gt=0"`
	MaxRounds     int           `mapstructure:"max_rounds" validate:"min=1"`
	QuotaFraction float64       `mapstructure:"quota_fraction" validate:"gt=0,lte=1"`

	// Wanted roster
	BaseWanted      int `mapstructure:"base_wanted" validate:"min=1"`
	WantedIncrement int `mapstructure:"wanted_increment" validate:"min=0"`

	// Drones
	DroneBaseCost       float64       `mapstructure:"drone_base_cost" validate:"gt=0"`
	DroneCostMultiplier float64       `mapstructure:"drone_cost_multiplier" validate:"gte=1"`
	BaseAccuracy        float64       `mapstructure:"base_accuracy" validate:"gte=0,lte=1"`
	AccuracyDecrease    float64       `mapstructure:"accuracy_decrease" validate:"gte=0,lte=1"`
	MinAccuracy         float64       `mapstructure:"min_accuracy" validate:"gte=0,lte=1"`
	ScanInterval        time.Duration `mapstructure:"scan_interval" validate:"gt=0"`
	ResponseWindow      time.Duration `mapstructure:"response_window" validate:"gt=0"`
	WarmupDelay         time.Duration `mapstructure:"warmup_delay" validate:"gte=0"`
	RetryDelay          time.Duration `mapstructure:"retry_delay" validate:"gte=0"`

	// Special events; a round of 0 disables the event
	CommendationRound int           `mapstructure:"commendation_round" validate:"min=0"`
	BetrayalRound     int           `mapstructure:"betrayal_round" validate:"min=0"`
	BetrayalDelay     time.Duration `mapstructure:"betrayal_delay" validate:"gte=0"`

	PlayerName string `mapstructure:"player_name"`

	// Seed for the random source; 0 seeds from the clock
	Seed uint64 `mapstructure:"seed"`
}

// CrowdConfig controls how many bystanders populate each round
type CrowdConfig struct {
	Size int `mapstructure:"size" validate:"min=0"`
}
