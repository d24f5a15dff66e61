package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"walletlink/internal/protocol/deeplink"
)

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("WALLETLINK_HOME", t.TempDir())

	cfg, err := ParseEnv()
	require.NoError(t, err)
	require.Equal(t, "devnet", cfg.Cluster)
	require.Equal(t, 120*time.Second, cfg.ResponseTimeout)
	require.Equal(t, "/wallet", cfg.RedirectPrefix)
	require.NoError(t, cfg.Validate())
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("WALLETLINK_HOME", t.TempDir())
	t.Setenv("WALLETLINK_CLUSTER", "mainnet-beta")
	t.Setenv("WALLETLINK_PLATFORM", "ios-chrome")
	t.Setenv("WALLETLINK_RESPONSE_TIMEOUT", "30s")

	cfg, err := ParseEnv()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.ResponseTimeout)

	dl, err := cfg.DeepLinkConfig()
	require.NoError(t, err)
	require.Equal(t, deeplink.PlatformIOSChrome, dl.Platform)
	require.Equal(t, deeplink.StyleUniversal, dl.Style)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("WALLETLINK_RESPONSE_TIMEOUT", "soon")

	_, err := ParseEnv()
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "parse env:"))
}

func TestValidate(t *testing.T) {
	base := Config{Home: t.TempDir(), Cluster: "devnet", LinkStyle: "scheme", Platform: "android"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no home", func(c *Config) { c.Home = "" }},
		{"cluster", func(c *Config) { c.Cluster = "localnet" }},
		{"style", func(c *Config) { c.LinkStyle = "carrier-pigeon" }},
		{"platform", func(c *Config) { c.Platform = "palmos" }},
		{"timeout", func(c *Config) { c.ResponseTimeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
