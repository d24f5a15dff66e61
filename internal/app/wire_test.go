package app

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/domain"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Home:           t.TempDir(),
		AppURL:         "https://dapp.example",
		RedirectPrefix: "/wallet",
		WalletScheme:   "phantom",
		UniversalBase:  "https://phantom.app/ul",
		LinkStyle:      "universal",
		Platform:       "desktop",
		Cluster:        "devnet",
	}
}

func TestNewWireSurvivesReload(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	var links []domain.Link
	nav := NavigatorFunc(func(_ context.Context, l domain.Link) error {
		links = append(links, l)
		return nil
	})

	w, err := NewWire(ctx, cfg, nav, nil)
	require.NoError(t, err)
	link, err := w.Session.Connect(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, link, links[0])
	require.Equal(t, domain.StateConnecting, w.Session.State())
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(cfg.Home, historyFilename))
	require.NoError(t, err)

	// A second wire is the page the wallet redirects back to.
	reloaded, err := NewWire(ctx, cfg, nav, nil)
	require.NoError(t, err)
	defer reloaded.Close()
	require.Equal(t, domain.StateConnecting, reloaded.Session.State())

	// A plain page load is not a response and changes nothing.
	home, _ := url.Parse("https://dapp.example/")
	require.NoError(t, reloaded.Location.Navigate(home))
	res, err := reloaded.Watcher.Check(ctx)
	require.NoError(t, err)
	require.False(t, res.Handled)
}

func TestNewWireRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cluster = "nowhere"
	_, err := NewWire(context.Background(), cfg, NavigatorFunc(func(context.Context, domain.Link) error { return nil }), nil)
	require.Error(t, err)
}

func TestNewWireSealedStateNeedsPassphrase(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Passphrase = "hunter2"
	nav := NavigatorFunc(func(context.Context, domain.Link) error { return nil })

	w, err := NewWire(ctx, cfg, nav, nil)
	require.NoError(t, err)
	_, err = w.Session.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	cfg.Passphrase = ""
	_, err = NewWire(ctx, cfg, nav, nil)
	require.Error(t, err)
}
