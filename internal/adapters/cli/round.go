package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewRoundCommand creates the round command with subcommands
func NewRoundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Start, end and review rounds",
		Long: `Control the round lifecycle.

A round starts from the interlude with a fresh wanted list and crowd and runs
until its countdown expires or it is ended early. Ending a round evaluates the
arrest quota the same way an expired countdown does.

Examples:
  dronewatch round start
  dronewatch round end
  dronewatch round results`,
	}

	cmd.AddCommand(newRoundStartCommand())
	cmd.AddCommand(newRoundEndCommand())
	cmd.AddCommand(newRoundResultsCommand())

	return cmd
}

func newRoundStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the next round",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameCommands.StartRoundResponse
				if err := call(ctx, client, daemon.CommandStartRound, nil, &resp); err != nil {
					return fmt.Errorf("failed to start round: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Round %d started\n", resp.Round)
					fmt.Fprintf(w, "  Wanted:    %d\n", resp.WantedCount)
					fmt.Fprintf(w, "  Required:  %d arrests\n", resp.RequiredArrests)
					fmt.Fprintf(w, "  Time:      %s\n", formatSeconds(resp.RemainingSeconds))
				})
			})
		},
	}
}

func newRoundEndCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the running round now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameCommands.EndRoundResponse
				if err := call(ctx, client, daemon.CommandEndRound, nil, &resp); err != nil {
					return fmt.Errorf("failed to end round: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					fmt.Fprintf(w, "Round %d ended: %d/%d arrests (%d required)\n",
						resp.Round, resp.Arrests, resp.TotalSuspects, resp.RequiredArrests)
					fmt.Fprintf(w, "  Balance:   %s\n", formatCredits(resp.Balance))
					if resp.GameOver {
						fmt.Fprintf(w, "  GAME OVER: %s\n", resp.Reason)
					} else {
						fmt.Fprintf(w, "  Next:      %s\n", resp.NextState)
					}
				})
			})
		},
	}
}

func newRoundResultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the results of every finished round of the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameQueries.GetRoundResultsResponse
				if err := call(ctx, client, daemon.CommandRoundResults, nil, &resp); err != nil {
					return fmt.Errorf("failed to get round results: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					if len(resp.Results) == 0 {
						fmt.Fprintln(w, "No rounds finished yet")
						return
					}
					fmt.Fprintf(w, "Game %s\n", resp.GameID)
					tw := newTable(w)
					fmt.Fprintln(tw, "Round\tArrests\tSuspects\tRequired\tReason\tNext")
					for _, r := range resp.Results {
						fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%s\n",
							r.Round, r.Arrests, r.TotalSuspects, r.RequiredArrests, r.Reason, r.NextState)
					}
					tw.Flush()
				})
			})
		},
	}
}
