package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"walletlink/internal/domain"
	"walletlink/internal/services/watcher"
)

// watch: an open page. Checks the address bar on every poll and resolves
// timed-out flows.
func watchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep checking the address bar for wallet responses",
		Long: `Keep checking the address bar for wallet responses until interrupted.

The state is loaded once at start, like a page: start flows from another
process before running watch, then feed redirects with "receive --no-check".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, false))
			if err != nil {
				return err
			}
			defer w.Close()

			cancel := w.Session.Subscribe(func(t domain.Transition) { printTransition(out, t) })
			defer cancel()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(out, "Watching (state %s, every %s).\n", w.Session.State(), c.cfg.PollInterval)
			err = w.Watcher.Run(ctx, watcher.NewTicker(c.cfg.PollInterval))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
