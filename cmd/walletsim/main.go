package main

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
	"walletlink/internal/logging"
	"walletlink/internal/walletsim"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		listen   string
		reject   bool
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "walletsim",
		Short:        "Development wallet answering deep links",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.New(logLevel, true)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			wallet, err := walletsim.New(walletsim.Options{Reject: reject, Logger: log})
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              listen,
				Handler:           host.AccessLog(log, wallet.Handler()),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Info("wallet simulator listening",
				zap.String("addr", listen),
				zap.String("account", wallet.Account().String()),
				zap.Bool("reject", reject))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:9090", "listen address")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject every request with errorCode 4001")
	cmd.Flags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error, off)")
	return cmd
}
