package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage DroneWatch configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (DW_* prefix)
2. Config file (config.yaml)
3. Default values

CLI preferences (socket path, output format) are stored in ~/.dronewatch/config.json

Examples:
  dronewatch config show
  dronewatch config set-socket /run/dronewatch.sock
  dronewatch config set-output json`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetSocketCommand())
	cmd.AddCommand(newConfigSetOutputCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.Default()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			g := cfg.Game
			fmt.Fprintln(out, "DroneWatch Configuration")
			fmt.Fprintln(out, "========================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Saved socket:     %s\n", orNotSet(userCfg.SocketPath))
			fmt.Fprintf(out, "  Saved output:     %s\n", orNotSet(userCfg.Output))
			fmt.Fprintf(out, "  Socket:           %s\n", resolveSocketPath())
			fmt.Fprintf(out, "  Output:           %s\n", resolveOutputFormat())

			fmt.Fprintln(out, "\nGame:")
			fmt.Fprintf(out, "  Rounds:           %d x %s\n", g.MaxRounds, g.RoundDuration)
			fmt.Fprintf(out, "  Quota:            %.2f of suspects\n", g.QuotaFraction)
			fmt.Fprintf(out, "  Wanted:           %d + %d per round\n", g.BaseWanted, g.WantedIncrement)
			fmt.Fprintf(out, "  Balance:          %.2f (bankrupt below %.2f)\n", g.StartingBalance, g.BankruptcyThreshold)
			fmt.Fprintf(out, "  Arrest:           +%.2f / -%.2f\n", g.ArrestReward, g.WrongArrestPenalty)
			fmt.Fprintf(out, "  Drones:           %.2f x%.2f, accuracy %.2f -%.2f (min %.2f)\n",
				g.DroneBaseCost, g.DroneCostMultiplier, g.BaseAccuracy, g.AccuracyDecrease, g.MinAccuracy)
			fmt.Fprintf(out, "  Crowd:            %d\n", cfg.Crowd.Size)
			fmt.Fprintf(out, "  Catalog:          %s\n", cfg.Catalog.Source)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  Socket Path:      %s\n", cfg.Daemon.SocketPath)
			fmt.Fprintf(out, "  Tick Rate:        %s\n", cfg.Daemon.TickRate)
			fmt.Fprintf(out, "  Auto Start:       %t\n", cfg.Daemon.AutoStart)
			if cfg.Daemon.WebSocket.Enabled {
				fmt.Fprintf(out, "  WebSocket:        ws://%s:%d%s\n",
					cfg.Daemon.WebSocket.Host, cfg.Daemon.WebSocket.Port, cfg.Daemon.WebSocket.Path)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			if cfg.Metrics.Enabled {
				fmt.Fprintln(out, "\nMetrics:")
				fmt.Fprintf(out, "  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			return nil
		},
	}
}

func newConfigSetSocketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-socket <path>",
		Short: "Set the default daemon socket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetSocketPath(args[0]); err != nil {
				return fmt.Errorf("failed to set socket path: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default socket set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigSetOutputCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set-output <table|json>",
		Short:     "Set the default output format",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"table", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetOutput(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default output set to %s\n", args[0])
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
