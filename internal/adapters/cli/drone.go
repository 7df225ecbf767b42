package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	gameCommands "github.com/andrescamacho/dronewatch-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	"github.com/andrescamacho/dronewatch-go/internal/domain/arrest"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewDroneCommand creates the drone command with subcommands
func NewDroneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drone",
		Short: "Buy drones and answer their identifications",
		Long: `Manage the surveillance fleet.

Each drone costs more and is less accurate than the previous one. While a round
runs, drones scan the crowd and report possible wanted persons; confirm or deny
a report before its response window closes, or it is confirmed automatically.

Examples:
  dronewatch drone buy
  dronewatch drone list --pending
  dronewatch drone confirm 1
  dronewatch drone deny 2`,
	}

	cmd.AddCommand(newDroneBuyCommand())
	cmd.AddCommand(newDroneListCommand())
	cmd.AddCommand(newDroneRespondCommand("confirm", true))
	cmd.AddCommand(newDroneRespondCommand("deny", false))

	return cmd
}

func newDroneBuyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buy",
		Short: "Buy the next drone",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameCommands.PurchaseDroneResponse
				if err := call(ctx, client, daemon.CommandBuyDrone, nil, &resp); err != nil {
					return fmt.Errorf("failed to buy drone: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					fmt.Fprintf(w, "✓ Drone %d purchased for %s (accuracy %.0f%%)\n",
						resp.Drone.ID, formatCredits(resp.Cost), resp.Drone.Accuracy*100)
					fmt.Fprintf(w, "  Balance:   %s\n", formatCredits(resp.Balance))
					fmt.Fprintf(w, "  Next cost: %s\n", formatCredits(resp.NextCost))
				})
			})
		},
	}
}

func newDroneListCommand() *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List drones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameQueries.ListDronesResponse
				if err := call(ctx, client, daemon.CommandListDrones, map[string]interface{}{"pending_only": pendingOnly}, &resp); err != nil {
					return fmt.Errorf("failed to list drones: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					if len(resp.Drones) == 0 {
						fmt.Fprintln(w, "No drones")
					} else {
						tw := newTable(w)
						fmt.Fprintln(tw, "ID\tAccuracy\tState\tNext Scan\tPending\tWindow")
						for _, d := range resp.Drones {
							pending, window := "-", "-"
							if d.PendingSightingID != "" {
								pending = fmt.Sprintf("%s as %s", d.PendingSightingID, d.PendingReportedAs)
								window = formatSeconds(d.PendingSeconds)
							}
							fmt.Fprintf(tw, "%d\t%.0f%%\t%s\t%s\t%s\t%s\n",
								d.ID, d.Accuracy*100, d.State, formatSeconds(d.NextScanSeconds), pending, window)
						}
						tw.Flush()
					}
					afford := "no"
					if resp.CanAfford {
						afford = "yes"
					}
					fmt.Fprintf(w, "\nNext drone: %s (accuracy %.0f%%), affordable: %s\n",
						formatCredits(resp.NextCost), resp.NextAccuracy*100, afford)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only show drones awaiting a response")

	return cmd
}

func newDroneRespondCommand(use string, confirm bool) *cobra.Command {
	short := "Deny a drone's identification"
	if confirm {
		short = "Confirm a drone's identification, arresting the reported person"
	}

	return &cobra.Command{
		Use:   use + " <drone-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			droneID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid drone id %q", args[0])
			}
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var verdict gameCommands.VerdictDTO
				req := map[string]interface{}{"drone_id": droneID, "confirm": confirm}
				if err := call(ctx, client, daemon.CommandRespond, req, &verdict); err != nil {
					return fmt.Errorf("failed to %s drone %d: %w", use, droneID, err)
				}
				return render(cmd, verdict, func(w io.Writer) { printVerdict(w, verdict) })
			})
		},
	}
}

// printVerdict renders the outcome of an arrest or a drone response
func printVerdict(w io.Writer, v gameCommands.VerdictDTO) {
	switch arrest.Outcome(v.Outcome) {
	case arrest.OutcomeCorrectArrest:
		fmt.Fprintf(w, "✓ Arrested %s (%s)\n", v.Name, v.SightingID)
	case arrest.OutcomeWrongArrest:
		fmt.Fprintf(w, "✗ Wrong arrest: %s (%s)\n", v.Name, v.SightingID)
	case arrest.OutcomePlayerCaught:
		fmt.Fprintln(w, "✗ Your own drone arrested you")
	case arrest.OutcomeDenied:
		fmt.Fprintln(w, "Identification denied")
	default:
		fmt.Fprintln(w, v.Outcome)
	}
	if v.Amount != 0 {
		fmt.Fprintf(w, "  Change:    %s\n", formatAmount(v.Amount))
	}
	fmt.Fprintf(w, "  Balance:   %s\n", formatCredits(v.Balance))
	if len(v.AffectedDrones) > 0 {
		fmt.Fprintf(w, "  Cleared reports from drones %v\n", v.AffectedDrones)
	}
}
