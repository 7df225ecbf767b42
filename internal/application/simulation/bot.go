package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// BotConfig tunes the automated player
type BotConfig struct {
	// ActionsPerSecond and Burst bound the bot's reaction rate in game time
	ActionsPerSecond float64
	Burst            int

	// ArrestAccuracy is the probability that the bot judges a person correctly
	ArrestAccuracy float64

	// BuyDrones lets the bot buy drones between rounds while it keeps Reserve in hand
	BuyDrones bool
	Reserve   float64
}

func DefaultBotConfig() BotConfig {
	return BotConfig{
		ActionsPerSecond: 1,
		Burst:            1,
		ArrestAccuracy:   0.9,
		Reserve:          50,
	}
}

// BotStats counts what the bot did
type BotStats struct {
	Actions      int
	Arrests      int
	Confirms     int
	Denials      int
	DronesBought int
	Rejected     int
}

// Bot plays a game through the mediator, the same way a remote player would
type Bot struct {
	mediator mediator.Mediator
	limiter  *rate.Limiter
	rng      shared.RandomSource
	config   BotConfig
	logger   *slog.Logger
	stats    BotStats
}

func NewBot(m mediator.Mediator, config BotConfig, rng shared.RandomSource, logger *slog.Logger) *Bot {
	if config.ActionsPerSecond <= 0 {
		config.ActionsPerSecond = DefaultBotConfig().ActionsPerSecond
	}
	if config.Burst < 1 {
		config.Burst = 1
	}
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &Bot{
		mediator: m,
		limiter:  rate.NewLimiter(rate.Limit(config.ActionsPerSecond), config.Burst),
		rng:      rng,
		config:   config,
		logger:   logger,
	}
}

func (b *Bot) Stats() BotStats {
	return b.stats
}

// Act takes at most one action if the rate limit allows it at game time now.
// It reports true once the game is over.
func (b *Bot) Act(ctx context.Context, now time.Time) (bool, error) {
	state, err := b.state(ctx)
	if err != nil {
		return false, err
	}
	if state.State == round.StateGameOver.String() {
		return true, nil
	}
	if !b.limiter.AllowN(now, 1) {
		return false, nil
	}

	switch state.State {
	case round.StateInterlude.String():
		err = b.actInterlude(ctx, state)
	case round.StatePlaying.String():
		err = b.actPlaying(ctx, state)
	default:
		return false, nil
	}
	return false, b.absorb(err)
}

func (b *Bot) state(ctx context.Context) (game.Snapshot, error) {
	resp, err := b.mediator.Send(ctx, &gameQueries.GetGameStateQuery{})
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to read game state: %w", err)
	}
	return resp.(*gameQueries.GetGameStateResponse).Snapshot, nil
}

func (b *Bot) actInterlude(ctx context.Context, state game.Snapshot) error {
	b.stats.Actions++
	if b.config.BuyDrones && state.Balance-state.NextDroneCost >= b.config.Reserve {
		if _, err := b.mediator.Send(ctx, &gameCommands.PurchaseDroneCommand{}); err != nil {
			return err
		}
		b.stats.DronesBought++
		return nil
	}
	_, err := b.mediator.Send(ctx, &gameCommands.StartRoundCommand{})
	return err
}

func (b *Bot) actPlaying(ctx context.Context, state game.Snapshot) error {
	wanted := wantedKeys(state.Wanted)

	for _, d := range state.Drones {
		if d.PendingReportedAs == "" {
			continue
		}
		b.stats.Actions++
		truth := false
		if !d.TargetsPlayer {
			for _, s := range state.Crowd {
				if s.ID == d.PendingSightingID {
					truth = wanted[sightingKey(s.Class, s.SubClass)]
					break
				}
			}
		}
		confirm := truth == b.recognizes()
		if confirm {
			b.stats.Confirms++
		} else {
			b.stats.Denials++
		}
		_, err := b.mediator.Send(ctx, &gameCommands.RespondToIdentificationCommand{DroneID: d.ID, Confirm: confirm})
		return err
	}

	if len(state.Wanted) == 0 {
		return nil
	}

	var hits, misses []game.SightingView
	for _, s := range state.Crowd {
		if wanted[sightingKey(s.Class, s.SubClass)] {
			hits = append(hits, s)
		} else {
			misses = append(misses, s)
		}
	}
	pool := hits
	if !b.recognizes() {
		pool = misses
	}
	if len(pool) == 0 {
		return nil
	}

	b.stats.Actions++
	b.stats.Arrests++
	target := pool[b.rng.IntN(len(pool))]
	_, err := b.mediator.Send(ctx, &gameCommands.ArrestSuspectCommand{SightingID: target.ID})
	return err
}

func (b *Bot) recognizes() bool {
	return b.rng.Float64() < b.config.ArrestAccuracy
}

// absorb swallows the soft rejections a racing player runs into
func (b *Bot) absorb(err error) error {
	if err == nil {
		return nil
	}
	var stateErr *shared.InvalidStateError
	var notFound *shared.NotFoundError
	var funds *shared.InsufficientFundsError
	if errors.As(err, &stateErr) || errors.As(err, &notFound) || errors.As(err, &funds) {
		b.stats.Rejected++
		b.logger.Debug("bot action rejected", "error", err)
		return nil
	}
	return err
}

func sightingKey(class string, subClass int) string {
	return fmt.Sprintf("%s-%d", class, subClass)
}

func wantedKeys(entries []events.WantedEntry) map[string]bool {
	keys := make(map[string]bool, len(entries))
	for _, w := range entries {
		keys[sightingKey(w.Class, w.SubClass)] = true
	}
	return keys
}
