package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// RunnerConfig controls a headless simulation
type RunnerConfig struct {
	Games    int
	TimeStep time.Duration

	// MaxSteps aborts a game that never reaches game over. 0 derives it from the game config.
	MaxSteps int
}

// GameSummary is the outcome of one simulated game
type GameSummary struct {
	GameID  string  `json:"game_id"`
	Rounds  int     `json:"rounds"`
	Reason  string  `json:"reason"`
	Balance float64 `json:"balance"`
	Won     bool    `json:"won"`
	Arrests int     `json:"arrests"`
	Drones  int     `json:"drones"`
}

// Report aggregates a simulation run
type Report struct {
	Games          []GameSummary  `json:"games"`
	Wins           int            `json:"wins"`
	ReasonCounts   map[string]int `json:"reason_counts"`
	AverageRounds  float64        `json:"average_rounds"`
	AverageBalance float64        `json:"average_balance"`
	Bot            BotStats       `json:"bot"`
}

// Runner plays consecutive games on one engine, advancing game time and the
// engine's clock in fixed steps
type Runner struct {
	engine   *game.Engine
	clock    *shared.MockClock
	mediator mediator.Mediator
	bot      *Bot
	config   RunnerConfig
	logger   *slog.Logger
}

func NewRunner(engine *game.Engine, clock *shared.MockClock, m mediator.Mediator, bot *Bot, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.Games < 1 {
		config.Games = 1
	}
	if config.TimeStep <= 0 {
		config.TimeStep = 100 * time.Millisecond
	}
	if config.MaxSteps <= 0 {
		rc := engine.Config().Round
		perRound := int(rc.RoundDuration/config.TimeStep) + 1
		config.MaxSteps = 2 * (rc.MaxRounds + 1) * perRound
	}
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &Runner{engine: engine, clock: clock, mediator: m, bot: bot, config: config, logger: logger}
}

// Run plays every configured game and reports their outcomes
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{ReasonCounts: make(map[string]int)}

	for i := 0; i < r.config.Games; i++ {
		if i > 0 {
			if _, err := r.mediator.Send(ctx, &gameCommands.ResetGameCommand{}); err != nil {
				return nil, fmt.Errorf("failed to reset game: %w", err)
			}
		}

		summary, err := r.playGame(ctx)
		if err != nil {
			return nil, err
		}
		r.logger.Info("simulated game finished",
			"game", i+1,
			"game_id", summary.GameID,
			"rounds", summary.Rounds,
			"reason", summary.Reason,
			"balance", summary.Balance)

		report.Games = append(report.Games, summary)
		report.ReasonCounts[summary.Reason]++
		if summary.Won {
			report.Wins++
		}
		report.AverageRounds += float64(summary.Rounds)
		report.AverageBalance += summary.Balance
	}

	n := float64(len(report.Games))
	report.AverageRounds /= n
	report.AverageBalance /= n
	report.Bot = r.bot.Stats()
	return report, nil
}

func (r *Runner) playGame(ctx context.Context) (GameSummary, error) {
	for step := 0; step < r.config.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return GameSummary{}, err
		}

		done, err := r.bot.Act(ctx, r.clock.Now())
		if err != nil {
			return GameSummary{}, err
		}
		if done {
			return r.summarize(ctx)
		}

		r.clock.Advance(r.config.TimeStep)
		r.engine.Advance(r.config.TimeStep)
	}
	return GameSummary{}, fmt.Errorf("game %s did not finish within %d steps", r.engine.GameID(), r.config.MaxSteps)
}

func (r *Runner) summarize(ctx context.Context) (GameSummary, error) {
	resp, err := r.mediator.Send(ctx, &gameQueries.GetRoundResultsQuery{})
	if err != nil {
		return GameSummary{}, fmt.Errorf("failed to read round results: %w", err)
	}
	results := resp.(*gameQueries.GetRoundResultsResponse)

	snap := r.engine.Snapshot()
	summary := GameSummary{
		GameID:  results.GameID,
		Rounds:  len(results.Results),
		Balance: snap.Balance,
		Drones:  len(snap.Drones),
	}
	for _, res := range results.Results {
		summary.Arrests += res.Arrests
	}
	if n := len(results.Results); n > 0 {
		summary.Reason = results.Results[n-1].Reason
		summary.Won = summary.Reason == round.EndReasonAllRoundsComplete.String()
	}
	return summary, nil
}
