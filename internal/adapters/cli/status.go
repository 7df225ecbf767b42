package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	gameQueries "github.com/andrescamacho/dronewatch-go/internal/application/game/queries"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameQueries.GetGameStateResponse
				if err := call(ctx, client, daemon.CommandGameState, nil, &resp); err != nil {
					return fmt.Errorf("failed to get game state: %w", err)
				}
				s := resp.Snapshot
				return render(cmd, s, func(w io.Writer) {
					fmt.Fprintf(w, "Game %s\n", s.GameID)
					fmt.Fprintln(w, divider)
					fmt.Fprintf(w, "State:       %s\n", s.State)
					fmt.Fprintf(w, "Round:       %d of %d\n", s.Round, s.MaxRounds)
					if s.State == "PLAYING" {
						fmt.Fprintf(w, "Remaining:   %s\n", formatSeconds(s.RemainingSeconds))
					}
					fmt.Fprintf(w, "Arrests:     %d/%d (%d required)\n", s.Arrests, s.TotalSuspects, s.RequiredArrests)
					fmt.Fprintf(w, "Balance:     %s\n", formatCredits(s.Balance))
					if s.Bankrupt {
						fmt.Fprintln(w, "             BANKRUPT")
					}
					fmt.Fprintf(w, "Drones:      %d (next %s at %.0f%%)\n",
						len(s.Drones), formatCredits(s.NextDroneCost), s.NextDroneAccuracy*100)
					if s.PlayerTargeted {
						fmt.Fprintln(w, "⚠ Your drones are hunting you")
					}
				})
			})
		},
	}
}

// NewWantedCommand creates the wanted command
func NewWantedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wanted",
		Short: "Show the wanted list of the current round",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameQueries.GetWantedListResponse
				if err := call(ctx, client, daemon.CommandWantedList, nil, &resp); err != nil {
					return fmt.Errorf("failed to get wanted list: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					if len(resp.Entries) == 0 {
						fmt.Fprintln(w, "Nobody is wanted")
						return
					}
					fmt.Fprintf(w, "WANTED (round %d)\n", resp.Round)
					tw := newTable(w)
					fmt.Fprintln(tw, "Name\tClass\tVisual")
					for _, e := range resp.Entries {
						fmt.Fprintf(tw, "%s\t%s%d\t%s\n", e.Name, e.Class, e.SubClass, e.Visual)
					}
					tw.Flush()

					classes := make([]string, 0, len(resp.ClassCounts))
					for class, n := range resp.ClassCounts {
						classes = append(classes, fmt.Sprintf("%s×%d", class, n))
					}
					sort.Strings(classes)
					fmt.Fprintf(w, "\nBy class: %s\n", strings.Join(classes, " "))
				})
			})
		},
	}
}

// NewCrowdCommand creates the crowd command
func NewCrowdCommand() *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "crowd",
		Short: "List who is present in the crowd",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp gameQueries.ListCrowdResponse
				if err := call(ctx, client, daemon.CommandCrowd, map[string]interface{}{"class": class}, &resp); err != nil {
					return fmt.Errorf("failed to list crowd: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					if len(resp.Sightings) == 0 {
						fmt.Fprintln(w, "The crowd is empty")
						return
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "ID\tName\tClass")
					for _, s := range resp.Sightings {
						fmt.Fprintf(tw, "%s\t%s\t%s%d\n", s.ID, s.Name, s.Class, s.SubClass)
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Only show one class (A-J)")

	return cmd
}
