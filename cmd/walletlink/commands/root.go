package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"walletlink/internal/app"
	"walletlink/internal/domain"
	"walletlink/internal/logging"
)

// cli carries the configuration shared by every subcommand.
type cli struct {
	cfg app.Config
	log *zap.Logger

	home       string
	passphrase string
	logLevel   string
	appURL     string
	universal  string
	cluster    string
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the root command.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "walletlink",
		Short:        "Connect a dapp to a Solana mobile wallet over deep links",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.home, "home", "", "state dir (default $WALLETLINK_HOME or ~/.walletlink)")
	pf.StringVarP(&c.passphrase, "passphrase", "p", "", "passphrase sealing the local session state")
	pf.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	pf.StringVar(&c.appURL, "app-url", "", "dapp origin the wallet redirects back to")
	pf.StringVar(&c.universal, "universal-base", "", "wallet universal link base, e.g. https://phantom.app/ul")
	pf.StringVar(&c.cluster, "cluster", "", "cluster label (mainnet-beta, devnet, testnet)")

	root.AddCommand(
		connectCmd(c),
		sendCmd(c),
		disconnectCmd(c),
		receiveCmd(c),
		watchCmd(c),
		statusCmd(c),
		historyCmd(c),
		browseCmd(c),
		serveCmd(c),
	)
	return root
}

// load parses the environment, then lets explicitly set flags win.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := app.ParseEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("home", &cfg.Home, c.home)
	override("passphrase", &cfg.Passphrase, c.passphrase)
	override("log-level", &cfg.LogLevel, c.logLevel)
	override("app-url", &cfg.AppURL, c.appURL)
	override("universal-base", &cfg.UniversalBase, c.universal)
	override("cluster", &cfg.Cluster, c.cluster)

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log
	return nil
}

// open builds the dependency graph for one page load.
func (c *cli) open(ctx context.Context, nav domain.Navigator) (*app.Wire, error) {
	return app.NewWire(ctx, c.cfg, nav, c.log)
}

// printNavigator returns a navigator printing links to out.
func printNavigator(out io.Writer, qr bool) domain.Navigator {
	return app.NavigatorFunc(func(_ context.Context, link domain.Link) error {
		return printLink(out, link, qr)
	})
}
