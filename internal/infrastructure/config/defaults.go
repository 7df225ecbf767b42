package config

import "time"

const (
	defaultStartingBalance     = 100.0
	defaultBankruptcyThreshold = -10.0
	defaultWantedIncrement     = 2
	defaultBaseAccuracy        = 0.75
	defaultAccuracyDecrease    = 0.1
	defaultMinAccuracy         = 0.3
	defaultWarmupDelay         = time.Second
	defaultCommendationRound   = 3
	defaultBetrayalRound       = 4
	defaultSimulationReserve   = 50.0
)

// zeroMeaningfulDefaults are registered with viper before unmarshalling
func zeroMeaningfulDefaults() map[string]interface{} {
	return map[string]interface{}{
		"game.starting_balance":     defaultStartingBalance,
		"game.bankruptcy_threshold": defaultBankruptcyThreshold,
		"game.wanted_increment":     defaultWantedIncrement,
		"game.base_accuracy":        defaultBaseAccuracy,
		"game.accuracy_decrease":    defaultAccuracyDecrease,
		"game.min_accuracy":         defaultMinAccuracy,
		"game.warmup_delay":         defaultWarmupDelay,
		"game.commendation_round":   defaultCommendationRound,
		"game.betrayal_round":       defaultBetrayalRound,
		"crowd.size":                20,
		"simulation.reserve":        defaultSimulationReserve,
		"metrics.enabled":           false,
	}
}

// SetDefaults sets default values for all configuration fields.
// Out-of-range tuning values are replaced rather than rejected.
func SetDefaults(cfg *Config) {
	// Game defaults
	g := &cfg.Game
	if g.ArrestReward <= 0 {
		g.ArrestReward = 50
	}
	if g.WrongArrestPenalty <= 0 {
		g.WrongArrestPenalty = 30
	}
	if g.RoundDuration <= 0 {
		g.RoundDuration = 60 * time.Second
	}
	if g.MaxRounds <= 0 {
		g.MaxRounds = 5
	}
	if g.QuotaFraction <= 0 || g.QuotaFraction > 1 {
		g.QuotaFraction = 1.0 / 3.0
	}
	if g.BaseWanted <= 0 {
		g.BaseWanted = 3
	}
	if g.WantedIncrement < 0 {
		g.WantedIncrement = defaultWantedIncrement
	}
	if g.DroneBaseCost <= 0 {
		g.DroneBaseCost = 15
	}
	if g.DroneCostMultiplier < 1 {
		g.DroneCostMultiplier = 1.5
	}
	if g.BaseAccuracy < 0 || g.BaseAccuracy > 1 {
		g.BaseAccuracy = defaultBaseAccuracy
	}
	if g.AccuracyDecrease < 0 || g.AccuracyDecrease > 1 {
		g.AccuracyDecrease = defaultAccuracyDecrease
	}
	if g.MinAccuracy < 0 || g.MinAccuracy > 1 {
		g.MinAccuracy = defaultMinAccuracy
	}
	if g.ScanInterval <= 0 {
		g.ScanInterval = 8 * time.Second
	}
	if g.ResponseWindow <= 0 {
		g.ResponseWindow = 5 * time.Second
	}
	if g.WarmupDelay < 0 {
		g.WarmupDelay = defaultWarmupDelay
	}
	if g.RetryDelay <= 0 {
		g.RetryDelay = 1 * time.Second
	}
	if g.CommendationRound < 0 {
		g.CommendationRound = defaultCommendationRound
	}
	if g.BetrayalRound < 0 {
		g.BetrayalRound = defaultBetrayalRound
	}
	if g.BetrayalDelay <= 0 {
		g.BetrayalDelay = 30 * time.Second
	}
	if g.PlayerName == "" {
		g.PlayerName = "Officer #7482"
	}

	// Crowd defaults
	if cfg.Crowd.Size < 0 {
		cfg.Crowd.Size = 20
	}

	// Catalog defaults
	if cfg.Catalog.Source == "" {
		if len(cfg.Catalog.People) > 0 {
			cfg.Catalog.Source = CatalogSourceConfig
		} else {
			cfg.Catalog.Source = CatalogSourceBuiltin
		}
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = DatabaseTypeSQLite
	}
	if cfg.Database.IsSQLite() && cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "dronewatch"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "dronewatch"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/dronewatch-daemon.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/dronewatch-daemon.pid"
	}
	if cfg.Daemon.TickRate <= 0 {
		cfg.Daemon.TickRate = 100 * time.Millisecond
	}
	if cfg.Daemon.ShutdownTimeout <= 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Daemon.EventBuffer <= 0 {
		cfg.Daemon.EventBuffer = 256
	}
	if cfg.Daemon.WebSocket.Path == "" {
		cfg.Daemon.WebSocket.Path = "/events"
	}
	if cfg.Daemon.WebSocket.Host == "" {
		cfg.Daemon.WebSocket.Host = "localhost"
	}
	if cfg.Daemon.WebSocket.Port == 0 {
		cfg.Daemon.WebSocket.Port = 8089
	}

	// Simulation defaults
	if cfg.Simulation.TimeStep <= 0 {
		cfg.Simulation.TimeStep = 100 * time.Millisecond
	}
	if cfg.Simulation.ActionsPerSecond <= 0 {
		cfg.Simulation.ActionsPerSecond = 1
	}
	if cfg.Simulation.Burst <= 0 {
		cfg.Simulation.Burst = 1
	}
	if cfg.Simulation.ArrestAccuracy <= 0 || cfg.Simulation.ArrestAccuracy > 1 {
		cfg.Simulation.ArrestAccuracy = 0.9
	}
	if cfg.Simulation.Games <= 0 {
		cfg.Simulation.Games = 1
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.PollInterval <= 0 {
		cfg.Metrics.PollInterval = 15 * time.Second
	}
}
