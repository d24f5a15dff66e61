package host

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"walletlink/internal/app"
	"walletlink/internal/domain"
	"walletlink/internal/logging"
	"walletlink/internal/protocol/deeplink"
	"walletlink/internal/services/session"
	"walletlink/internal/services/watcher"
)

// DefaultHistoryLimit bounds GET /transactions without ?limit.
const DefaultHistoryLimit = 50

// Server is the dapp's HTTP surface over one Wire.
type Server struct {
	wire *app.Wire
	log  *zap.Logger

	// pageMu makes "load the address, then check it" atomic: the wire's
	// location is a single address bar shared by every request.
	pageMu sync.Mutex
}

// New returns a Server over w.
func New(w *app.Wire) *Server {
	return &Server{wire: w, log: logging.OrNop(w.Log).Named("host")}
}

// Navigator returns the navigator for an HTTP-hosted wire. Links are handed
// to the browser in the response body, so navigation only records them.
func Navigator(log *zap.Logger) domain.Navigator {
	log = logging.OrNop(log)
	return app.NavigatorFunc(func(_ context.Context, link domain.Link) error {
		log.Debug("deep link issued",
			zap.String("action", link.Action.String()),
			zap.String("cid", link.CorrelationID.String()))
		return nil
	})
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+s.wire.Redirects.Prefix()+"/{callback}", s.handleCallback)
	mux.HandleFunc("GET /open", s.handleOpen)
	mux.HandleFunc("GET /browse", s.handleBrowse)
	mux.HandleFunc("POST /connect", s.handleConnect)
	mux.HandleFunc("POST /disconnect", s.handleDisconnect)
	mux.HandleFunc("POST /transactions", s.handleSendTransaction)
	mux.HandleFunc("GET /transactions", s.handleHistory)
	mux.HandleFunc("GET /status", s.handleStatus)
	return AccessLog(s.log, mux)
}

// Run resolves timed-out flows every interval until ctx is done, so a flow
// the wallet never answers does not wait for the next request.
func (s *Server) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	trig := watcher.NewTicker(interval)
	defer trig.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trig.C():
			if t, ok, err := s.wire.Session.Expire(ctx); err != nil {
				s.log.Warn("expire", zap.Error(err))
			} else if ok {
				s.log.Info("flow timed out", zap.String("action", t.Action.String()))
			}
		}
	}
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if _, ok := domain.ActionFromCallback(r.PathValue("callback")); !ok {
		http.NotFound(w, r)
		return
	}
	page := *r.URL
	page.Scheme, page.Host = "", ""
	u := s.absolute(&page)

	s.pageMu.Lock()
	err := s.wire.Location.Navigate(u)
	var res watcher.Result
	if err == nil {
		res, err = s.wire.Watcher.Check(r.Context())
	}
	s.pageMu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	view := callbackView{
		Handled:   res.Handled,
		Duplicate: res.Duplicate,
		Status:    s.wire.Session.Snapshot(),
	}
	if res.Handled {
		view.Transition = newTransitionView(res.Transition)
	}
	switch {
	case res.Err != nil:
		s.writeError(w, statusFor(res.Err), res.Err)
	case !res.Handled && !res.Duplicate:
		s.writeError(w, http.StatusBadRequest, domain.NewError(domain.KindMalformed, "no wallet response in request"))
	default:
		s.writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	link, ok := deeplink.Unwrap(r.URL)
	if !ok || !s.wire.Builder.IsWalletLink(link) {
		s.writeError(w, http.StatusBadRequest, domain.NewError(domain.KindPrecondition, "link is not a wallet link"))
		return
	}
	s.log.Debug("fallback redirect",
		zap.String("platform", string(deeplink.DetectPlatform(r.UserAgent()))))
	http.Redirect(w, r, link, http.StatusFound)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		target = s.wire.Builder.AppURL()
	}
	link, err := s.wire.Builder.BrowseURL(target)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	link, err := s.wire.Session.Connect(r.Context())
	s.respondLink(w, link, err)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	link, err := s.wire.Session.Disconnect(r.Context())
	s.respondLink(w, link, err)
}

type transactionInput struct {
	Recipient string      `json:"recipient"`
	Lamports  uint64      `json:"lamports"`
	SOL       json.Number `json:"sol"`
}

func (s *Server) handleSendTransaction(w http.ResponseWriter, r *http.Request) {
	var in transactionInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.WrapError(domain.KindPrecondition, "invalid request body", err))
		return
	}
	recipient, err := solana.PublicKeyFromBase58(in.Recipient)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, domain.WrapError(domain.KindPrecondition, "invalid recipient", err))
		return
	}
	lamports := in.Lamports
	if lamports == 0 && in.SOL != "" {
		if lamports, err = domain.LamportsFromSOL(in.SOL.String()); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	link, err := s.wire.Session.SendTransaction(r.Context(), domain.TransactionRequest{
		Recipient: recipient,
		Lamports:  lamports,
	})
	s.respondLink(w, link, err)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, domain.NewError(domain.KindPrecondition, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	recs, err := s.wire.History.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sum, err := s.wire.History.Summary(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if recs == nil {
		recs = []domain.TransactionRecord{}
	}
	s.writeJSON(w, http.StatusOK, historyView{Summary: sum, Transactions: recs})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.wire.Session.Snapshot())
}

func (s *Server) respondLink(w http.ResponseWriter, link domain.Link, err error) {
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, linkView{
		Action:        link.Action,
		URL:           link.URL,
		CorrelationID: link.CorrelationID,
		State:         s.wire.Session.State(),
	})
}

// absolute resolves a request path against the app URL so the location
// holds the same address the wallet redirected to.
func (s *Server) absolute(ref *url.URL) *url.URL {
	base, err := url.Parse(s.wire.Builder.AppURL())
	if err != nil {
		return ref
	}
	return base.ResolveReference(ref)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotConnected),
		errors.Is(err, session.ErrAlreadyConnected),
		errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	switch domain.KindOf(err) {
	case domain.KindPrecondition, domain.KindMalformed:
		return http.StatusBadRequest
	case domain.KindStale:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	kind := domain.KindOf(err)
	msg := domain.UserMessage("", err)
	if kind == domain.KindInternal {
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, errorView{Error: msg, Kind: kind.String()})
}
