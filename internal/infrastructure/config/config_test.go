package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/simulation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_MatchesEngineDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, game.DefaultConfig(), cfg.EngineConfig())
	assert.Equal(t, CatalogSourceBuiltin, cfg.Catalog.Source)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 100*time.Millisecond, cfg.Daemon.TickRate)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
game:
  max_rounds: 7
  round_duration: 90s
  quota_fraction: 0.33
  bankruptcy_threshold: 0
crowd:
  size: 4
catalog:
  people:
    - name: Ada
      visual: ada.png
      class: A
      sub_class: 1
    - name: Bo
      class: B
      sub_class: 2
database:
  type: sqlite
  path: ":memory:"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Game.MaxRounds)
	assert.Equal(t, 90*time.Second, cfg.Game.RoundDuration)
	assert.InDelta(t, 0.33, cfg.Game.QuotaFraction, 1e-9)
	assert.Equal(t, 0.0, cfg.Game.BankruptcyThreshold)
	assert.Equal(t, 4, cfg.Crowd.Size)
	assert.Equal(t, 2, cfg.Game.WantedIncrement)
	assert.Equal(t, CatalogSourceConfig, cfg.Catalog.Source)

	catalog, err := cfg.Catalog.BuildCatalog()
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Size())
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "game:\n  max_rounds: 3\n")
	t.Setenv("DW_GAME_BETRAYAL_ROUND", "0")
	t.Setenv("DW_GAME_MAX_ROUNDS", "9")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Game.BetrayalRound)
	assert.Equal(t, 9, cfg.Game.MaxRounds)
}

func TestLoadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
game:
  quota_fraction: 4
  max_rounds: -2
  drone_cost_multiplier: 0.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3.0, cfg.Game.QuotaFraction, 1e-9)
	assert.Equal(t, 5, cfg.Game.MaxRounds)
	assert.Equal(t, 1.5, cfg.Game.DroneCostMultiplier)
}

func TestLoadConfig_RejectsUnknownEnumerations(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: verbose\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestLoadConfig_RejectsBadCatalogEntry(t *testing.T) {
	path := writeConfig(t, `
catalog:
  people:
    - name: Nobody
      class: A
      sub_class: 7
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestBuildCatalog_InvalidClass(t *testing.T) {
	c := CatalogConfig{People: []PersonConfig{{Name: "X", Class: "Z", SubClass: 1}}}
	_, err := c.BuildCatalog()
	assert.Error(t, err)
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.Game.MaxRounds)
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	h := NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))

	empty, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.SocketPath)

	require.NoError(t, h.SetSocketPath("/tmp/dw.sock"))
	require.NoError(t, h.SetOutput("json"))
	assert.Error(t, h.SetOutput("yaml"))

	loaded, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dw.sock", loaded.SocketPath)
	assert.Equal(t, "json", loaded.Output)
}

func TestSimulationConfig_MatchesBotDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, simulation.DefaultBotConfig(), cfg.Simulation.BotConfig())
	runner := cfg.Simulation.RunnerConfig()
	assert.Equal(t, 1, runner.Games)
	assert.Equal(t, 100*time.Millisecond, runner.TimeStep)
}

func TestLoadConfig_SimulationReserveMayBeZero(t *testing.T) {
	path := writeConfig(t, `
simulation:
  reserve: 0
  buy_drones: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Simulation.Reserve)
	assert.True(t, cfg.Simulation.BuyDrones)
}

func TestLoadConfig_ZeroTuningValuesAreKept(t *testing.T) {
	path := writeConfig(t, `
game:
  starting_balance: 0
  base_accuracy: 0
  min_accuracy: 0
  warmup_delay: 0s
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Zero(t, cfg.Game.StartingBalance)
	assert.Zero(t, cfg.Game.BaseAccuracy)
	assert.Zero(t, cfg.Game.MinAccuracy)
	assert.Zero(t, cfg.Game.WarmupDelay)

	engine := cfg.EngineConfig()
	assert.Zero(t, engine.Ledger.StartingBalance)
	assert.Zero(t, engine.Fleet.BaseAccuracy)
	assert.Zero(t, engine.Fleet.Agent.WarmupDelay)
}

func TestLoadConfig_UnsetTuningValuesUseDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "crowd:\n  size: 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Game.StartingBalance)
	assert.Equal(t, 0.75, cfg.Game.BaseAccuracy)
	assert.Equal(t, 0.3, cfg.Game.MinAccuracy)
	assert.Equal(t, time.Second, cfg.Game.WarmupDelay)
}

func TestLoadConfig_RejectsAccuracyFloorAboveBase(t *testing.T) {
	path := writeConfig(t, `
game:
  base_accuracy: 0.4
  min_accuracy: 0.6
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MinAccuracy")
	assert.Contains(t, err.Error(), "ltefield=BaseAccuracy")
}

func TestLoadConfig_RejectsBetrayalDelayOutlastingRound(t *testing.T) {
	path := writeConfig(t, `
game:
  round_duration: 30s
  betrayal_round: 2
  betrayal_delay: 30s
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BetrayalDelay")

	// Without a betrayal round the delay is never used
	path = writeConfig(t, `
game:
  round_duration: 30s
  betrayal_round: 0
  betrayal_delay: 45s
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Game.BetrayalDelay)
}

func TestValidateConfig_GameRules(t *testing.T) {
	cfg := Default()
	require.NoError(t, ValidateConfig(cfg))

	cfg.Game.MinAccuracy = cfg.Game.BaseAccuracy
	assert.NoError(t, ValidateConfig(cfg))

	cfg.Game.BetrayalDelay = cfg.Game.RoundDuration - time.Millisecond
	assert.NoError(t, ValidateConfig(cfg))

	cfg.Game.BetrayalDelay = cfg.Game.RoundDuration
	assert.Error(t, ValidateConfig(cfg))
}

func TestDatabaseConfig_SQLiteDefaults(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Database.IsSQLite())
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.SQLitePath())

	assert.Equal(t, MemoryDatabasePath, DatabaseConfig{Type: DatabaseTypeSQLite}.SQLitePath())

	postgres := DatabaseConfig{Type: DatabaseTypePostgres}
	assert.False(t, postgres.IsSQLite())
}
