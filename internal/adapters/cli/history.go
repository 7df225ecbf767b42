package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/dronewatch-go/internal/application/history/queries"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewHistoryCommand creates the history command with subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review finished and running games",
		Long: `Review the game history recorded by the daemon.

Examples:
  dronewatch history list --limit 10
  dronewatch history show
  dronewatch history show 6f1c0a4e-...`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp queries.ListGamesResponse
				if err := call(ctx, client, daemon.CommandListGames, map[string]interface{}{"limit": limit}, &resp); err != nil {
					return fmt.Errorf("failed to list games: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					if len(resp.Games) == 0 {
						fmt.Fprintln(w, "No games recorded")
						return
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "Game\tStarted\tRounds\tBalance\tResult")
					for _, g := range resp.Games {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
							g.ID, g.StartedAt.Format("2006-01-02 15:04"), g.RoundsPlayed,
							formatCredits(g.FinalBalance), gameResult(g))
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of games to list")

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [game-id]",
		Short: "Show the rounds of one game (default: current game)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]interface{}{}
			if len(args) == 1 {
				req["game_id"] = args[0]
			}
			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp queries.GetGameHistoryResponse
				if err := call(ctx, client, daemon.CommandGameHistory, req, &resp); err != nil {
					return fmt.Errorf("failed to get game history: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) {
					g := resp.Game
					fmt.Fprintf(w, "Game %s\n", g.ID)
					fmt.Fprintf(w, "Started:     %s\n", g.StartedAt.Format("2006-01-02 15:04:05"))
					fmt.Fprintf(w, "Result:      %s\n", gameResult(g))
					fmt.Fprintf(w, "Balance:     %s\n", formatCredits(g.FinalBalance))
					fmt.Fprintln(w, divider)
					if len(resp.Rounds) == 0 {
						fmt.Fprintln(w, "No rounds finished yet")
						return
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "Round\tArrests\tRequired\tQuota\tBalance\tReason")
					for _, r := range resp.Rounds {
						quota := "missed"
						if r.QuotaMet {
							quota = "met"
						}
						fmt.Fprintf(tw, "%d\t%d/%d\t%d\t%s\t%s\t%s\n",
							r.Round, r.Arrests, r.TotalSuspects, r.RequiredArrests, quota, formatCredits(r.Balance), r.Reason)
					}
					tw.Flush()
				})
			})
		},
	}
}

func gameResult(g *queries.GameDTO) string {
	switch {
	case g.Won:
		return "WON"
	case g.EndedAt == nil:
		return "IN PROGRESS"
	default:
		return g.Reason
	}
}
