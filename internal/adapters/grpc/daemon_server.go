package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// ServerConfig holds the daemon server settings
type ServerConfig struct {
	SocketPath      string
	TickRate        time.Duration
	EventBuffer     int
	ShutdownTimeout time.Duration
}

// BackgroundTask runs alongside the server until ctx is cancelled
type BackgroundTask struct {
	Name string
	Run  func(ctx context.Context) error
}

// DaemonServer hosts one game engine behind the gRPC game service.
// It owns the real-time tick loop that advances the engine.
type DaemonServer struct {
	mediator mediator.Mediator
	engine   *game.Engine
	logger   *slog.Logger
	config   ServerConfig

	grpcServer *grpc.Server
	listener   net.Listener

	commandFactories map[string]CommandFactory
	tasks            []BackgroundTask

	stopping     chan struct{}
	stoppingOnce sync.Once
}

// NewDaemonServer creates the server and registers the game service. Nothing listens until Listen or Run.
func NewDaemonServer(m mediator.Mediator, engine *game.Engine, config ServerConfig, logger *slog.Logger) *DaemonServer {
	if logger == nil {
		logger = common.DiscardLogger()
	}
	if config.TickRate <= 0 {
		config.TickRate = 100 * time.Millisecond
	}
	if config.EventBuffer < 1 {
		config.EventBuffer = 256
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	s := &DaemonServer{
		mediator:         m,
		engine:           engine,
		logger:           logger,
		config:           config,
		commandFactories: make(map[string]CommandFactory),
		stopping:         make(chan struct{}),
	}
	s.registerCommandFactories()

	s.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	RegisterGameServiceServer(s.grpcServer, newGameServiceImpl(s))
	return s
}

// AddTask registers a background task that shares the server's lifecycle
func (s *DaemonServer) AddTask(name string, run func(ctx context.Context) error) {
	s.tasks = append(s.tasks, BackgroundTask{Name: name, Run: run})
}

// Listen opens the unix socket, replacing a stale socket file
func (s *DaemonServer) Listen() error {
	if err := os.MkdirAll(filepath.Dir(s.config.SocketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}
	if err := os.RemoveAll(s.config.SocketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", s.config.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(s.config.SocketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.listener = listener
	return nil
}

// Run serves on the listener from Listen, or lis when given, and runs the tick loop and
// every background task until ctx is cancelled or one of them fails
func (s *DaemonServer) Run(ctx context.Context, lis net.Listener) error {
	if lis == nil {
		if s.listener == nil {
			if err := s.Listen(); err != nil {
				return err
			}
		}
		lis = s.listener
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("daemon server listening", "addr", lis.Addr().String())
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.runTicker(gctx)
	})

	for _, task := range s.tasks {
		task := task
		g.Go(func() error {
			if err := task.Run(gctx); err != nil {
				return fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	err := g.Wait()
	if s.config.SocketPath != "" && s.listener != nil {
		os.Remove(s.config.SocketPath)
	}
	return err
}

// shutdown ends open watch streams, then stops the gRPC server gracefully within the timeout
func (s *DaemonServer) shutdown() {
	s.stoppingOnce.Do(func() { close(s.stopping) })
	s.logger.Info("initiating graceful shutdown of gRPC server")

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(s.config.ShutdownTimeout):
		s.logger.Warn("graceful shutdown timed out, forcing stop", "timeout", s.config.ShutdownTimeout)
		s.grpcServer.Stop()
	}
}

// runTicker advances the engine by the wall-clock time elapsed between ticks
func (s *DaemonServer) runTicker(ctx context.Context) error {
	ticker := time.NewTicker(s.config.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.engine.Advance(dt)
		}
	}
}

// Execute runs a named command in-process. It backs both the gRPC service and the local client.
func (s *DaemonServer) Execute(ctx context.Context, command string, args map[string]interface{}) (map[string]interface{}, error) {
	req, err := s.buildRequest(command, args)
	if err != nil {
		return nil, err
	}

	ctx = common.WithLogger(ctx, s.logger.With("command", command))
	resp, err := s.mediator.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return toMap(resp)
}

// Subscribe returns a buffered feed of engine events of the given types
func (s *DaemonServer) Subscribe(types ...events.EventType) (<-chan events.Event, *events.Subscription) {
	return s.engine.Bus().SubscribeChannel(s.config.EventBuffer, types...)
}

// Stopping is closed once shutdown begins
func (s *DaemonServer) Stopping() <-chan struct{} {
	return s.stopping
}

func (s *DaemonServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Warn("rpc failed", "method", info.FullMethod, "duration", time.Since(start), "error", err)
	} else {
		s.logger.Debug("rpc completed", "method", info.FullMethod, "duration", time.Since(start))
	}
	return resp, err
}
