package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root command for the fleet CLI.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fleet",
		Short: "Autonomous trading fleet for the SpaceTraders market simulation",
		Long: `fleet runs a self-provisioning trading fleet against the SpaceTraders
market simulation. The daemon plans one round trip per ship per cycle,
keeps every remote call behind a single rate-limited dispatch lane, and
serves a live dashboard over WebSocket.

Examples:
  fleet run
  fleet run --config configs/config.yaml
  fleet provision
  fleet status`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/spacetraders-fleet)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewProvisionCommand())
	rootCmd.AddCommand(NewStatusCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
