package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewArrestCommand creates the arrest command
func NewArrestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "arrest <sighting-id>",
		Short: "Arrest a person in the crowd",
		Long: `Arrest the crowd member with the given sighting ID (e.g. P7 or 7).

Arresting a wanted person pays the arrest reward and counts toward the round
quota. Arresting anyone else costs the wrong arrest penalty.

Example:
  dronewatch arrest P7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var verdict gameCommands.VerdictDTO
				if err := call(ctx, client, daemon.CommandArrest, map[string]interface{}{"sighting_id": args[0]}, &verdict); err != nil {
					return fmt.Errorf("failed to arrest %s: %w", args[0], err)
				}
				return render(cmd, verdict, func(w io.Writer) { printVerdict(w, verdict) })
			})
		},
	}
}
