package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewProvisionCommand creates the one-shot account bootstrap command.
func NewProvisionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Claim a fresh account, take the starting loan, and deploy scouts",
		Long: `Provision bootstraps an account from nothing: claim a credential under
the configured username, persist it, request the starting loan, park a
scout at each configured market, and buy the first freighter. The daemon
runs this automatically when the service rejects its credential; the
command exists to bootstrap by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, configPath)
			if err != nil {
				return err
			}
			defer a.close()

			return a.provisioner.Provision(ctx)
		},
	}
}
