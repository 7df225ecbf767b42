package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/config"
)

const divider = "─────────────────────────────────────────────────────────────"

// resolveOutputFormat returns --output, else the user config default, else table
func resolveOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil && userCfg.Output != "" {
			return userCfg.Output
		}
	}
	return "table"
}

// render prints v as indented JSON or through the table printer
func render(cmd *cobra.Command, v interface{}, table func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	switch format := resolveOutputFormat(); format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table":
		table(out)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// formatAmount renders a signed balance change
func formatAmount(amount float64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%.2f", amount)
	}
	return fmt.Sprintf("%.2f", amount)
}

func formatCredits(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
