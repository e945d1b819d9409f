package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the one-shot fleet summary command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the account balance and current fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, configPath)
			if err != nil {
				return err
			}
			defer a.close()

			account, err := a.client.GetAccount(ctx)
			if err != nil {
				return err
			}

			ships, err := a.client.ListShips(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account:  %s\n", account.Username)
			fmt.Fprintf(out, "Credits:  %d\n", account.Credits)
			fmt.Fprintf(out, "Ships:    %d\n\n", len(ships))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tLOCATION\tCARGO\tSPEED")
			for _, ship := range ships {
				location := ship.Location
				if location == "" {
					location = "(in transit)"
				}
				used := 0
				for _, c := range ship.Cargo {
					used += c.TotalVolume
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\n",
					ship.ID, ship.Type, location, used, ship.MaxCargo, ship.Speed)
			}
			return w.Flush()
		},
	}
}
