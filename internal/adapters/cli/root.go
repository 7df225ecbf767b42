package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	socketPath   string
	configPath   string
	outputFormat string
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dronewatch",
		Short: "DroneWatch CLI - play the surveillance game through the daemon",
		Long: `DroneWatch CLI controls a game session hosted by the dronewatch daemon.
The CLI communicates with the daemon via Unix socket.

Examples:
  dronewatch round start
  dronewatch wanted
  dronewatch crowd --class C
  dronewatch arrest P7
  dronewatch drone buy
  dronewatch drone confirm 2
  dronewatch watch --types ROUND_ENDED,GAME_OVER
  dronewatch simulate --games 20`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "",
		"Path to daemon Unix socket (default from user config, DRONEWATCH_SOCKET or daemon.socket_path)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"Output format: table or json (default from user config, else table)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewRoundCommand())
	rootCmd.AddCommand(NewDroneCommand())
	rootCmd.AddCommand(NewArrestCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewWantedCommand())
	rootCmd.AddCommand(NewCrowdCommand())
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
