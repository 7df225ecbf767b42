package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/setup"
	"github.com/andrescamacho/dronewatch-go/internal/application/simulation"
	"github.com/andrescamacho/dronewatch-go/internal/domain/roster"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

func newRunner(t *testing.T, bot simulation.BotConfig, games int) *simulation.Runner {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	engine := game.NewEngine(game.DefaultConfig(), roster.DefaultCatalog(), shared.NewSeededRandom(99), clock, events.NewBus(), nil)
	require.NoError(t, engine.Boot())

	m, err := setup.NewHandlerRegistry(engine, nil, nil, clock).CreateConfiguredMediator()
	require.NoError(t, err)

	b := simulation.NewBot(m, bot, shared.NewSeededRandom(7), nil)
	return simulation.NewRunner(engine, clock, m, b, simulation.RunnerConfig{Games: games, TimeStep: 100 * time.Millisecond}, nil)
}

func TestRunner_PerfectBotWinsEveryGame(t *testing.T) {
	config := simulation.DefaultBotConfig()
	config.ArrestAccuracy = 1
	runner := newRunner(t, config, 2)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Games, 2)
	assert.Equal(t, 2, report.Wins)
	assert.Equal(t, map[string]int{"ALL_ROUNDS_COMPLETE": 2}, report.ReasonCounts)

	for _, g := range report.Games {
		assert.Equal(t, 5, g.Rounds)
		// 3 + 5 + 7 + 9 wanted, then the ten classes of the default catalog
		assert.Equal(t, 34, g.Arrests)
		assert.Equal(t, 1800.0, g.Balance)
	}
	assert.NotEqual(t, report.Games[0].GameID, report.Games[1].GameID)
	assert.Equal(t, 5.0, report.AverageRounds)
	assert.Zero(t, report.Bot.DronesBought)
}

func TestRunner_BlindBotGoesBankrupt(t *testing.T) {
	config := simulation.DefaultBotConfig()
	config.ArrestAccuracy = 0
	runner := newRunner(t, config, 1)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Games, 1)

	g := report.Games[0]
	assert.Equal(t, "BANKRUPT", g.Reason)
	assert.Equal(t, 1, g.Rounds)
	assert.Zero(t, g.Arrests)
	assert.Less(t, g.Balance, -10.0)
	assert.False(t, g.Won)
}

func TestRunner_BotBuysDronesWithSurplus(t *testing.T) {
	config := simulation.DefaultBotConfig()
	config.ArrestAccuracy = 1
	config.BuyDrones = true
	runner := newRunner(t, config, 1)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, report.Bot.DronesBought)
	assert.Equal(t, report.Bot.DronesBought, report.Games[0].Drones)
}

func TestRunner_StopsOnCancel(t *testing.T) {
	runner := newRunner(t, simulation.DefaultBotConfig(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
