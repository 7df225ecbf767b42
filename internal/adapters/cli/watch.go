package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/dronewatch-go/internal/domain/daemon"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream game events until interrupted",
		Long: `Stream game events from the daemon as they happen.

Without --types every event is shown. With -o json each event is printed as
one JSON object per line.

Examples:
  dronewatch watch
  dronewatch watch --types DRONE_IDENTIFICATION,ARREST_RESOLVED
  dronewatch watch -o json | jq .payload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory()
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			format := resolveOutputFormat()
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)

			return client.Watch(ctx, types, func(e daemon.Event) error {
				if format == "json" {
					return enc.Encode(e)
				}
				_, err := fmt.Fprintln(out, formatEvent(e))
				return err
			})
		},
	}

	cmd.Flags().StringSliceVar(&types, "types", nil, "Comma-separated event types to show")

	return cmd
}

// formatEvent renders an event as one line: TYPE round=N key=value...
func formatEvent(e daemon.Event) string {
	var b strings.Builder
	b.WriteString(e.Type())
	if round, ok := e["round"].(float64); ok && round > 0 {
		fmt.Fprintf(&b, " round=%d", int(round))
	}

	payload := e.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := payload[k].(type) {
		case map[string]interface{}, []interface{}:
			raw, _ := json.Marshal(v)
			fmt.Fprintf(&b, " %s=%s", k, raw)
		default:
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
	}
	return b.String()
}
