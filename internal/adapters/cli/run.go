package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-fleet/internal/adapters/dashboard"
)

// NewRunCommand creates the daemon command.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the autonomous trading daemon",
		Long: `Run starts the fleet cycle: refresh ships and markets, plan the most
profitable round trip per ship, and execute it. The loop runs until
interrupted. If the dashboard is enabled, a WebSocket event stream,
leaderboard history, and Prometheus metrics are served alongside.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runDaemon(ctx)
		},
	}
}

func runDaemon(ctx context.Context) error {
	a, err := buildApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Infof("[fleet] starting as %s against %s", a.cfg.Operator.Username, a.cfg.API.BaseURL)

	if a.cfg.Dashboard.Enabled {
		hub := dashboard.NewHub(a.logger)
		stream, unsubscribe := a.bus.Subscribe(256)
		defer unsubscribe()
		go hub.Run(ctx, stream)

		server := dashboard.NewServer(a.cfg.Dashboard, hub, a.leaderboards, a.collector.Registry(), a.logger)
		go func() {
			if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.LogError(err)
			}
		}()

		poller := dashboard.NewLeaderboardPoller(a.client, a.leaderboards, a.bus, a.logger, a.clock,
			a.cfg.Dashboard.LeaderboardInterval)
		go poller.Run(ctx)
	}

	return a.cycle.Run(ctx)
}
