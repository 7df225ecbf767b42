package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Session-wide operations",
	}

	cmd.AddCommand(newGameResetCommand())
	cmd.AddCommand(newGameTargetPlayerCommand())

	return cmd
}

func newGameResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon the current game and start a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameCommands.ResetGameResponse
				if err := call(ctx, client, daemon.CommandResetGame, nil, &resp); err != nil {
					return fmt.Errorf("failed to reset game: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					fmt.Fprintf(w, "✓ New game %s (balance %s)\n", resp.GameID, formatCredits(resp.Balance))
				})
			})
		},
	}
}

func newGameTargetPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "target-player",
		Short:  "Turn every drone against the player",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameCommands.TargetPlayerResponse
				if err := call(ctx, client, daemon.CommandTargetPlayer, nil, &resp); err != nil {
					return fmt.Errorf("failed to target player: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					fmt.Fprintf(w, "⚠ %d drones now target the player\n", resp.Drones)
				})
			})
		},
	}
}
