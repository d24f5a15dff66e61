package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"walletlink/internal/host"
)

// serve: run the HTTP dapp host.
func serveCmd(c *cli) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP dapp host the wallet redirects back to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				c.cfg.ListenAddr = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := c.open(ctx, host.Navigator(c.log))
			if err != nil {
				return err
			}
			defer w.Close()

			hs := host.New(w)
			srv := &http.Server{
				Addr:              c.cfg.ListenAddr,
				Handler:           hs.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() { _ = hs.Run(ctx, c.cfg.PollInterval) }()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			c.log.Info("dapp host listening",
				zap.String("addr", c.cfg.ListenAddr),
				zap.String("app_url", c.cfg.AppURL),
				zap.String("state", w.Session.State().String()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default $WALLETLINK_LISTEN_ADDR)")
	return cmd
}
