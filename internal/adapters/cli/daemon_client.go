package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/dronewatch-go/internal/adapters/grpc"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/config"
)

const commandTimeout = 10 * time.Second

// clientFactory opens a daemon connection. Tests swap in an in-process client.
var clientFactory = func() (daemon.DaemonClient, error) {
	return grpcAdapter.NewDaemonClientGRPC(resolveSocketPath())
}

// resolveSocketPath picks the socket in priority order: --socket, user config,
// DRONEWATCH_SOCKET, then daemon.socket_path from config.yaml
func resolveSocketPath() string {
	if socketPath != "" {
		return socketPath
	}
	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil && userCfg.SocketPath != "" {
			return userCfg.SocketPath
		}
	}
	if path := os.Getenv("DRONEWATCH_SOCKET"); path != "" {
		return path
	}
	return config.LoadConfigOrDefault(configPath).Daemon.SocketPath
}

// withClient runs fn against a fresh daemon connection under the command timeout
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client daemon.DaemonClient) error) error {
	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	return fn(ctx, client)
}

// call executes a daemon command and decodes its result into out
func call(ctx context.Context, client daemon.DaemonClient, command string, args map[string]interface{}, out interface{}) error {
	result, err := client.Execute(ctx, command, args)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := grpcAdapter.DecodeResult(result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", command, err)
	}
	return nil
}
