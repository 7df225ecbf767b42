package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/setup"
	"github.com/andrescamacho/dronewatch-go/internal/application/simulation"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/config"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/database"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/logging"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		games     int
		seed      uint64
		accuracy  float64
		buyDrones bool
		timeStep  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play games headlessly with a bot and report the outcomes",
		Long: `Run complete games in-process with a scripted player, no daemon needed.

Game time advances in fixed steps, so a five-round game finishes in well under
a second. The game tuning comes from config.yaml; flags override the
simulation section.

Examples:
  dronewatch simulate
  dronewatch simulate --games 50 --accuracy 0.7 --buy-drones
  dronewatch simulate --seed 42 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			sim := cfg.Simulation
			flags := cmd.Flags()
			if flags.Changed("games") {
				sim.Games = games
			}
			if flags.Changed("accuracy") {
				sim.ArrestAccuracy = accuracy
			}
			if flags.Changed("buy-drones") {
				sim.BuyDrones = buyDrones
			}
			if flags.Changed("time-step") {
				sim.TimeStep = timeStep
			}
			if !flags.Changed("seed") {
				seed = cfg.Game.Seed
			}

			logCfg := cfg.Logging
			logCfg.Level = "warn"
			if verbose {
				logCfg.Level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), logCfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var db *gorm.DB
			if cfg.Catalog.Source == config.CatalogSourceDatabase {
				if db, err = database.NewConnection(&cfg.Database); err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close(db)
				if err := database.AutoMigrate(db); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
			}
			catalog, err := database.LoadCatalog(ctx, cfg.Catalog, db)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			clock := shared.NewMockClock(time.Now())
			engine := game.NewEngine(cfg.EngineConfig(), catalog, shared.NewSeededRandom(seed), clock, events.NewBus(), logger)
			if err := engine.Boot(); err != nil {
				return err
			}

			m, err := setup.NewHandlerRegistry(engine, nil, nil, clock).CreateConfiguredMediator()
			if err != nil {
				return err
			}

			botSeed := seed
			if botSeed != 0 {
				botSeed++
			}
			bot := simulation.NewBot(m, sim.BotConfig(), shared.NewSeededRandom(botSeed), logger)
			runner := simulation.NewRunner(engine, clock, m, bot, sim.RunnerConfig(), logger)

			report, err := runner.Run(ctx)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			return render(cmd, report, func(w io.Writer) { printReport(w, report) })
		},
	}

	cmd.Flags().IntVar(&games, "games", 1, "Number of games to play")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 0.9, "Probability the bot recognizes a wanted person")
	cmd.Flags().BoolVar(&buyDrones, "buy-drones", false, "Let the bot buy drones between rounds")
	cmd.Flags().DurationVar(&timeStep, "time-step", 100*time.Millisecond, "Game time advanced per step")

	return cmd
}

func printReport(w io.Writer, r *simulation.Report) {
	tw := newTable(w)
	fmt.Fprintln(tw, "Game\tRounds\tArrests\tDrones\tBalance\tResult")
	for i, g := range r.Games {
		result := g.Reason
		if g.Won {
			result = "WON"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%s\n", i+1, g.Rounds, g.Arrests, g.Drones, formatCredits(g.Balance), result)
	}
	tw.Flush()

	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "Won %d of %d games\n", r.Wins, len(r.Games))
	fmt.Fprintf(w, "Average rounds:  %.2f\n", r.AverageRounds)
	fmt.Fprintf(w, "Average balance: %s\n", formatCredits(r.AverageBalance))

	reasons := make([]string, 0, len(r.ReasonCounts))
	for reason := range r.ReasonCounts {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(w, "  %-16s %d\n", reason+":", r.ReasonCounts[reason])
	}
	fmt.Fprintf(w, "Bot: %d actions, %d arrests, %d confirms, %d denials, %d drones\n",
		r.Bot.Actions, r.Bot.Arrests, r.Bot.Confirms, r.Bot.Denials, r.Bot.DronesBought)
}
