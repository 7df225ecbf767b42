package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/dronewatch-go/internal/application/ledger/queries"
	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View the balance journal of a game.

Every balance change (arrest rewards, wrong arrest penalties and drone
purchases) is journaled by the daemon. Commands default to the current game.

Examples:
  dronewatch ledger list
  dronewatch ledger list --round 2 --category PENALTIES
  dronewatch ledger report
  dronewatch ledger report --game 6f1c0a4e-...`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerReportCommand())

	return cmd
}

func newLedgerListCommand() *cobra.Command {
	var (
		gameID   string
		round    int
		category string
		txType   string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List journaled transactions with optional filtering.

Categories:
  BOUNTY_REVENUE     - Arrest rewards
  PENALTIES          - Wrong arrest penalties
  DRONE_INVESTMENTS  - Drone purchases
  ADJUSTMENTS        - Commendations and manual corrections

Transaction Types:
  ARREST_REWARD, WRONG_ARREST_PENALTY, DRONE_PURCHASE,
  ADJUSTMENT_CREDIT, ADJUSTMENT_DEBIT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]interface{}{"limit": limit, "offset": offset}
			if gameID != "" {
				req["game_id"] = gameID
			}
			if cmd.Flags().Changed("round") {
				req["round"] = round
			}
			if category != "" {
				req["category"] = category
			}
			if txType != "" {
				req["type"] = txType
			}

			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp queries.GetTransactionsResponse
				if err := call(ctx, client, daemon.CommandTransactions, req, &resp); err != nil {
					return fmt.Errorf("failed to list transactions: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) { displayTransactionList(w, &resp) })
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (default: current game)")
	cmd.Flags().IntVar(&round, "round", 0, "Filter by round")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")

	return cmd
}

func newLedgerReportCommand() *cobra.Command {
	var (
		gameID string
		round  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a profit & loss statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]interface{}{}
			if gameID != "" {
				req["game_id"] = gameID
			}
			if cmd.Flags().Changed("round") {
				req["round"] = round
			}

			return withClient(cmd, func(ctx context.Context, client daemon.DaemonClient) error {
				var resp queries.GetProfitLossResponse
				if err := call(ctx, client, daemon.CommandProfitLoss, req, &resp); err != nil {
					return fmt.Errorf("failed to generate report: %w", err)
				}
				return render(cmd, resp, func(w io.Writer) { displayProfitLoss(w, &resp) })
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (default: current game)")
	cmd.Flags().IntVar(&round, "round", 0, "Limit the report to one round")

	return cmd
}

func displayTransactionList(w io.Writer, response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Fprintln(w, "No transactions found")
		return
	}

	fmt.Fprintf(w, "\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Fprintln(w, divider)

	tw := newTable(w)
	fmt.Fprintln(tw, "Timestamp\tRound\tType\tAmount\tBalance")
	for _, tx := range response.Transactions {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Round,
			tx.Type,
			formatAmount(tx.Amount),
			formatCredits(tx.BalanceAfter),
		)
	}
	tw.Flush()
	fmt.Fprintln(w, divider)
}

func displayProfitLoss(w io.Writer, response *queries.GetProfitLossResponse) {
	fmt.Fprintf(w, "\nPROFIT & LOSS STATEMENT\n")
	fmt.Fprintf(w, "Period: %s\n", response.Period)
	fmt.Fprintln(w, divider)

	fmt.Fprintln(w, "\nREVENUE")
	for _, category := range sortedKeys(response.RevenueBreakdown) {
		fmt.Fprintf(w, "  %-25s %s\n", category+":", formatCredits(response.RevenueBreakdown[category]))
	}
	fmt.Fprintf(w, "  %-25s %s\n", "Total Revenue:", formatCredits(response.TotalRevenue))

	fmt.Fprintln(w, "\nEXPENSES")
	for _, category := range sortedKeys(response.ExpenseBreakdown) {
		fmt.Fprintf(w, "  %-25s %s\n", category+":", formatCredits(-response.ExpenseBreakdown[category]))
	}
	fmt.Fprintf(w, "  %-25s %s\n", "Total Expenses:", formatCredits(-response.TotalExpenses))

	if len(response.RoundNet) > 0 {
		rounds := make([]int, 0, len(response.RoundNet))
		for r := range response.RoundNet {
			rounds = append(rounds, r)
		}
		sort.Ints(rounds)
		fmt.Fprintln(w, "\nBY ROUND")
		for _, r := range rounds {
			fmt.Fprintf(w, "  Round %-19d %s\n", r, formatAmount(response.RoundNet[r]))
		}
	}

	fmt.Fprintln(w, "\n"+divider)
	fmt.Fprintf(w, "NET PROFIT:               %s\n", formatAmount(response.NetProfit))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
