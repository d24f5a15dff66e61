package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"walletlink/internal/domain"
	"walletlink/internal/logging"
	"walletlink/internal/protocol/deeplink"
	historysvc "walletlink/internal/services/history"
	sessionsvc "walletlink/internal/services/session"
	"walletlink/internal/services/watcher"
	"walletlink/internal/store"
	"walletlink/internal/store/sqlite"
)

const historyFilename = "history.db"

// NavigatorFunc adapts a function to domain.Navigator.
type NavigatorFunc func(ctx context.Context, link domain.Link) error

// Navigate calls f.
func (f NavigatorFunc) Navigate(ctx context.Context, link domain.Link) error { return f(ctx, link) }

// Wire bundles all stores and services for one page load.
type Wire struct {
	Config    Config
	Builder   *deeplink.Builder
	Redirects *deeplink.Redirects
	Location  *store.LocationFileStore
	Session   *sessionsvc.Service
	Watcher   *watcher.Watcher
	History   *historysvc.Service
	Log       *zap.Logger

	historyDB *sqlite.Store
}

// NewWire constructs the dependency graph from cfg and restores the state
// left by the previous page load. nav receives every outbound link.
func NewWire(ctx context.Context, cfg Config, nav domain.Navigator, log *zap.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = logging.OrNop(log)
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	dl, err := cfg.DeepLinkConfig()
	if err != nil {
		return nil, err
	}
	builder, err := deeplink.NewBuilder(dl)
	if err != nil {
		return nil, err
	}
	redirects, err := deeplink.NewRedirects(cfg.AppURL, cfg.RedirectPrefix)
	if err != nil {
		return nil, err
	}

	// File-based stores
	pendingStore := store.NewPendingFileStore(cfg.Home, cfg.Passphrase)
	sessionStore := store.NewSessionFileStore(cfg.Home, cfg.Passphrase)
	locationStore := store.NewLocationFileStore(cfg.Home)

	historyDB, err := sqlite.Open(filepath.Join(cfg.Home, historyFilename))
	if err != nil {
		return nil, err
	}

	// High-level services
	sessionSvc := sessionsvc.New(builder, redirects, pendingStore, sessionStore, historyDB, nav, sessionsvc.Options{
		Cluster:         domain.Cluster(cfg.Cluster),
		ResponseTimeout: cfg.ResponseTimeout,
		Logger:          log,
	})
	if err := sessionSvc.Restore(ctx); err != nil {
		_ = historyDB.Close()
		return nil, err
	}

	w := watcher.New(locationStore, sessionSvc, watcher.Options{Expirer: sessionSvc, Logger: log})

	return &Wire{
		Config:    cfg,
		Builder:   builder,
		Redirects: redirects,
		Location:  locationStore,
		Session:   sessionSvc,
		Watcher:   w,
		History:   historysvc.New(historyDB),
		Log:       log,
		historyDB: historyDB,
	}, nil
}

// Close releases the history database.
func (w *Wire) Close() error {
	if w == nil {
		return nil
	}
	return w.historyDB.Close()
}
