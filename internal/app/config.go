package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"walletlink/internal/domain"
	"walletlink/internal/protocol/deeplink"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string `env:"WALLETLINK_HOME"`       // state directory, e.g. $HOME/.walletlink
	Passphrase string `env:"WALLETLINK_PASSPHRASE"` // seals pending.json and session.json when set
	LogLevel   string `env:"WALLETLINK_LOG_LEVEL" envDefault:"info"`
	LogDev     bool   `env:"WALLETLINK_LOG_DEV"`

	AppURL         string `env:"WALLETLINK_APP_URL" envDefault:"http://127.0.0.1:8080"`
	RedirectPrefix string `env:"WALLETLINK_REDIRECT_PREFIX" envDefault:"/wallet"`
	FallbackPath   string `env:"WALLETLINK_FALLBACK_PATH" envDefault:"/open"`
	WalletScheme   string `env:"WALLETLINK_WALLET_SCHEME" envDefault:"phantom"`
	UniversalBase  string `env:"WALLETLINK_UNIVERSAL_BASE" envDefault:"https://phantom.app/ul"`
	LinkStyle      string `env:"WALLETLINK_LINK_STYLE" envDefault:"universal"`
	Platform       string `env:"WALLETLINK_PLATFORM" envDefault:"desktop"`
	Cluster        string `env:"WALLETLINK_CLUSTER" envDefault:"devnet"`

	ResponseTimeout time.Duration `env:"WALLETLINK_RESPONSE_TIMEOUT" envDefault:"120s"`
	PollInterval    time.Duration `env:"WALLETLINK_POLL_INTERVAL" envDefault:"1s"`
	ListenAddr      string        `env:"WALLETLINK_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
}

// ParseEnv loads configuration from WALLETLINK_* environment variables and
// fills in the home directory when unset.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.Home) == "" {
		home, err := DefaultHome()
		if err != nil {
			return Config{}, err
		}
		cfg.Home = home
	}
	return cfg, nil
}

// DefaultHome returns ~/.walletlink.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(dir, ".walletlink"), nil
}

// Validate checks the values NewWire cannot default.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Home) == "" {
		return fmt.Errorf("home directory is required")
	}
	if !domain.Cluster(c.Cluster).Valid() {
		return fmt.Errorf("unknown cluster %q", c.Cluster)
	}
	if _, err := deeplink.ParseLinkStyle(c.LinkStyle); err != nil {
		return err
	}
	if _, err := deeplink.ParsePlatform(c.Platform); err != nil {
		return err
	}
	if c.ResponseTimeout < 0 {
		return fmt.Errorf("response timeout must not be negative")
	}
	return nil
}

// DeepLinkConfig maps c onto the builder configuration.
func (c Config) DeepLinkConfig() (deeplink.Config, error) {
	style, err := deeplink.ParseLinkStyle(c.LinkStyle)
	if err != nil {
		return deeplink.Config{}, err
	}
	platform, err := deeplink.ParsePlatform(c.Platform)
	if err != nil {
		return deeplink.Config{}, err
	}
	return deeplink.Config{
		Scheme:        c.WalletScheme,
		UniversalBase: c.UniversalBase,
		AppURL:        c.AppURL,
		Style:         style,
		Platform:      platform,
		FallbackPath:  c.FallbackPath,
	}, nil
}
