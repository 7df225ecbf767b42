package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcAdapter "github.com/andrescamacho/dronewatch-go/internal/adapters/grpc"
	"github.com/andrescamacho/dronewatch-go/internal/adapters/metrics"
	"github.com/andrescamacho/dronewatch-go/internal/adapters/persistence"
	"github.com/andrescamacho/dronewatch-go/internal/adapters/websocket"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/journal"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/application/setup"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/config"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/database"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/logging"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/pidfile"
)

func main() {
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configFlag := flag.String("config", "", "Path to config.yaml (default: search ., ./configs, /etc/dronewatch)")
	flag.Parse()

	fmt.Println("DroneWatch Daemon v0.1.0")
	fmt.Println("========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configFlag)

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	if err := pf.Acquire(); err != nil {
		if !*forceFlag {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
		fmt.Println("Force mode enabled - attempting to kill existing daemon...")
		if killErr := pf.KillExisting(cfg.Daemon.ShutdownTimeout); killErr != nil {
			log.Fatalf("Failed to kill existing daemon: %v", killErr)
		}
		fmt.Println("Existing daemon killed")
		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	transactionRepo := persistence.NewGormTransactionRepository(db)
	historyRepo := persistence.NewGormHistoryRepository(db)

	// 2. Game engine
	catalog, err := database.LoadCatalog(ctx, cfg.Catalog, db)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	fmt.Printf("Catalog loaded from %s: %d people in %d classes\n",
		cfg.Catalog.Source, catalog.Size(), len(catalog.DistinctClasses()))

	clock := shared.NewRealClock()
	bus := events.NewBus()
	engine := game.NewEngine(cfg.EngineConfig(), catalog, shared.NewSeededRandom(cfg.Game.Seed), clock, bus, logger)

	// 3. Mediator
	var middleware []mediator.Middleware
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandCollector := metrics.NewCommandMetricsCollector()
		if err := commandCollector.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		middleware = append(middleware, metrics.PrometheusMiddleware(commandCollector))
	}

	m, err := setup.NewHandlerRegistry(engine, transactionRepo, historyRepo, clock).CreateConfiguredMediator(middleware...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	// The journal subscribes before Boot so the first interlude is on record
	journal.NewJournal(m, logger).Attach(bus)

	// 4. Metrics
	if cfg.Metrics.Enabled {
		gameCollector := metrics.NewGameMetricsCollector()
		if err := gameCollector.Register(); err != nil {
			return fmt.Errorf("failed to register game metrics: %w", err)
		}
		gameCollector.Attach(bus)

		financialCollector := metrics.NewFinancialMetricsCollector(m, func() string { return engine.GameID().String() }, logger)
		if err := financialCollector.Register(); err != nil {
			return fmt.Errorf("failed to register financial metrics: %w", err)
		}
		metrics.SetGlobalFinancialCollector(financialCollector)
		financialCollector.Start(ctx, cfg.Metrics.PollInterval)
		defer financialCollector.Stop()

		metricsServer, err := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			metricsServer.Shutdown(shutdownCtx)
		}()
		fmt.Printf("Metrics available at http://%s%s\n", metricsServer.Addr(), cfg.Metrics.Path)
	}

	if err := engine.Boot(); err != nil {
		return fmt.Errorf("failed to boot game: %w", err)
	}
	if cfg.Daemon.AutoStart {
		if err := engine.StartNextRound(); err != nil {
			return fmt.Errorf("failed to start first round: %w", err)
		}
	}
	fmt.Printf("Game %s ready (%s)\n", engine.GameID(), engine.State())

	// 5. Daemon server
	fmt.Printf("Starting daemon server on: %s\n", cfg.Daemon.SocketPath)
	server := grpcAdapter.NewDaemonServer(m, engine, grpcAdapter.ServerConfig{
		SocketPath:      cfg.Daemon.SocketPath,
		TickRate:        cfg.Daemon.TickRate,
		EventBuffer:     cfg.Daemon.EventBuffer,
		ShutdownTimeout: cfg.Daemon.ShutdownTimeout,
	}, logger)
	if err := server.Listen(); err != nil {
		return err
	}

	if ws := cfg.Daemon.WebSocket; ws.Enabled {
		feed := websocket.NewFeed(bus, cfg.Daemon.EventBuffer, ws.AllowedOrigins, logger)
		wsServer := websocket.NewServer(feed, ws.Host, ws.Port, ws.Path)
		server.AddTask("websocket feed", func(ctx context.Context) error {
			return wsServer.Run(ctx, cfg.Daemon.ShutdownTimeout)
		})
		fmt.Printf("Event feed at ws://%s\n", wsServer.HTTP.Addr+ws.Path)
	}

	fmt.Println("\n✓ Daemon is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Run(ctx, nil); err != nil {
		return fmt.Errorf("daemon server error: %w", err)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}
