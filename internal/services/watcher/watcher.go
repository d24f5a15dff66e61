package watcher

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"walletlink/internal/domain"
	"walletlink/internal/logging"
	"walletlink/internal/protocol/deeplink"
)

// DefaultMaxConsumed bounds the remembered response keys.
const DefaultMaxConsumed = 256

// Result reports what one Check did.
type Result struct {
	// Handled is true when a new response was forwarded to the handler.
	Handled bool
	// Duplicate is true when an already consumed response reappeared, e.g.
	// after a back-button navigation. It was scrubbed again and dropped.
	Duplicate  bool
	Key        string
	Transition domain.Transition
	// Err is the handler's error, typically a stale response.
	Err error
}

// Options tune a Watcher.
type Options struct {
	// Expirer, when set, is asked to resolve timed-out flows on every
	// trigger fire.
	Expirer domain.Expirer
	// OnResult observes every Check that found a response.
	OnResult    func(Result)
	MaxConsumed int
	Logger      *zap.Logger
}

// Watcher checks a Location for unconsumed wallet responses.
type Watcher struct {
	loc     domain.Location
	handler domain.ResponseHandler
	opts    Options
	log     *zap.Logger

	mu       sync.Mutex
	consumed map[string]struct{}
	order    []string
}

// New returns a Watcher forwarding responses found in loc to handler.
func New(loc domain.Location, handler domain.ResponseHandler, opts Options) *Watcher {
	if opts.MaxConsumed <= 0 {
		opts.MaxConsumed = DefaultMaxConsumed
	}
	log := logging.OrNop(opts.Logger)
	return &Watcher{
		loc:      loc,
		handler:  handler,
		opts:     opts,
		log:      log.Named("watcher"),
		consumed: make(map[string]struct{}),
	}
}

// Check performs one pass over the current location.
//
// Steps:
//  1. Read the location; return if it carries no response parameters.
//  2. If the response was consumed before, scrub it again and drop it.
//  3. Otherwise mark it consumed, scrub the parameters from the location
//     without navigating, and only then forward it to the handler.
//
// Checks are serialised, so overlapping triggers cannot forward the same
// response twice. The returned error reports location failures only.
func (w *Watcher) Check(ctx context.Context) (Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	u, err := w.loc.Current(ctx)
	if err != nil {
		return Result{}, err
	}
	if !deeplink.IsResponse(u) {
		return Result{}, nil
	}

	key := deeplink.Key(u)
	if _, seen := w.consumed[key]; seen {
		if err := w.loc.Replace(ctx, deeplink.Scrub(u)); err != nil {
			w.log.Warn("scrub duplicate response", zap.Error(err))
		}
		w.log.Debug("duplicate response dropped", zap.String("key", key))
		res := Result{Duplicate: true, Key: key}
		w.observe(res)
		return res, nil
	}

	w.remember(key)
	if err := w.loc.Replace(ctx, deeplink.Scrub(u)); err != nil {
		// The key is already consumed, so a failed scrub cannot cause a
		// second delivery.
		w.log.Warn("scrub response", zap.Error(err))
	}

	t, herr := w.handler.HandleResponse(ctx, u)
	res := Result{Handled: true, Key: key, Transition: t, Err: herr}
	if herr != nil {
		w.log.Info("response rejected", zap.String("key", key), zap.Error(herr))
	} else {
		w.log.Debug("response handled",
			zap.String("key", key),
			zap.String("from", t.From.String()),
			zap.String("to", t.To.String()))
	}
	w.observe(res)
	return res, nil
}

// Run checks once, then again every time trig fires, until ctx is done.
// Each fire first resolves timed-out flows through the Expirer.
func (w *Watcher) Run(ctx context.Context, trig Trigger) error {
	defer trig.Stop()

	if _, err := w.Check(ctx); err != nil {
		w.log.Warn("initial check", zap.Error(err))
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trig.C():
			w.tick(ctx)
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	if w.opts.Expirer != nil {
		if t, ok, err := w.opts.Expirer.Expire(ctx); err != nil {
			w.log.Warn("expire", zap.Error(err))
		} else if ok {
			w.log.Info("flow timed out",
				zap.String("action", t.Action.String()),
				zap.String("to", t.To.String()))
		}
	}
	if _, err := w.Check(ctx); err != nil {
		w.log.Warn("check", zap.Error(err))
	}
}

// remember marks key consumed, forgetting the oldest key past the bound.
func (w *Watcher) remember(key string) {
	w.consumed[key] = struct{}{}
	w.order = append(w.order, key)
	if len(w.order) > w.opts.MaxConsumed {
		delete(w.consumed, w.order[0])
		w.order = w.order[1:]
	}
}

func (w *Watcher) observe(res Result) {
	if w.opts.OnResult != nil {
		w.opts.OnResult(res)
	}
}
