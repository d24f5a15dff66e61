package session

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/logging"
	"walletlink/internal/protocol/deeplink"
)

// DefaultResponseTimeout bounds how long a flow waits for the wallet.
const DefaultResponseTimeout = 120 * time.Second

// Options tune a Service. Zero values select defaults.
type Options struct {
	Cluster         domain.Cluster
	ResponseTimeout time.Duration
	Clock           func() time.Time
	Blockhash       BlockhashSource
	Logger          *zap.Logger
}

// Service is the wallet connection state machine.
//
// All connection state (keypair, shared secret, session token) is owned by
// the Service and mirrored to the stores so a fresh instance can Restore it
// after a reload. Exported methods are safe for concurrent use; observers
// registered with Subscribe run after the internal lock is released.
//
// The Navigator is called while the lock is held and must not call back
// into the Service.
type Service struct {
	builder   *deeplink.Builder
	redirects *deeplink.Redirects
	pendings  domain.PendingStore
	sessions  domain.SessionStore
	history   domain.TransactionSink
	nav       domain.Navigator
	opts      Options
	log       *zap.Logger

	mu         sync.Mutex
	session    *domain.Session
	pending    *domain.PendingRequest
	lastErr    error
	lastAction domain.Action
	queued     []domain.Transition

	subMu  sync.Mutex
	subs   map[int]func(domain.Transition)
	nextID int
}

var (
	_ domain.ResponseHandler = (*Service)(nil)
	_ domain.Expirer         = (*Service)(nil)
)

// New constructs a Service. history may be nil.
func New(
	builder *deeplink.Builder,
	redirects *deeplink.Redirects,
	pendings domain.PendingStore,
	sessions domain.SessionStore,
	history domain.TransactionSink,
	nav domain.Navigator,
	opts Options,
) *Service {
	if opts.Cluster == "" {
		opts.Cluster = domain.ClusterDevnet
	}
	if opts.ResponseTimeout <= 0 {
		opts.ResponseTimeout = DefaultResponseTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Blockhash == nil {
		opts.Blockhash = RandomBlockhash
	}
	log := logging.OrNop(opts.Logger)
	return &Service{
		builder:   builder,
		redirects: redirects,
		pendings:  pendings,
		sessions:  sessions,
		history:   history,
		nav:       nav,
		opts:      opts,
		log:       log.Named("session"),
		subs:      make(map[int]func(domain.Transition)),
	}
}

// Restore rebuilds in-memory state from the stores. It is the page-load step:
// call it once per process before handling responses.
//
// A pending transaction without a live session, or a pending connect next to
// a live session or with a damaged keypair, cannot be resolved and is dropped.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.flush()
	defer s.mu.Unlock()

	s.session = nil
	s.pending = nil

	sess, ok, err := s.sessions.LoadSession()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if ok && sess.Authenticated() {
		s.session = &sess
	}

	req, ok, err := s.pendings.LoadPending()
	if err != nil {
		return fmt.Errorf("restore pending request: %w", err)
	}
	if ok {
		switch {
		case req.Action == domain.ActionConnect && (s.session != nil || !keypairIntact(req.Keypair)),
			req.Action == domain.ActionSignAndSendTransaction && s.session == nil:
			s.log.Warn("dropping unresolvable pending request",
				zap.String("cid", req.ID.String()), zap.String("action", req.Action.String()))
			if err := s.pendings.ClearPending(); err != nil {
				return fmt.Errorf("clear pending request: %w", err)
			}
		default:
			s.pending = &req
		}
	}

	s.log.Debug("restored", zap.String("state", s.stateLocked().String()))
	_, _, err = s.expireLocked()
	return err
}

// Connect starts a connection attempt.
//
// Steps:
//  1. Resolve any expired flow; refuse if a session is live or a request is
//     still in flight.
//  2. Generate a fresh ephemeral keypair and a correlation id.
//  3. Build the connect link with a redirect carrying the correlation id.
//  4. Persist the correlation record (with the keypair) before navigating,
//     since nothing in memory survives the trip to the wallet.
//  5. Hand the link to the Navigator. The attempt resolves later, in
//     HandleResponse or Expire.
func (s *Service) Connect(ctx context.Context) (domain.Link, error) {
	s.mu.Lock()
	defer s.flush()
	defer s.mu.Unlock()

	if _, _, err := s.expireLocked(); err != nil {
		return domain.Link{}, err
	}
	if s.session != nil {
		return domain.Link{}, ErrAlreadyConnected
	}
	if s.busyLocked() {
		return domain.Link{}, ErrBusy
	}

	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return domain.Link{}, domain.WrapError(domain.KindInternal, "generate keypair", err)
	}
	id, err := newCorrelationID()
	if err != nil {
		return domain.Link{}, err
	}
	raw, err := s.builder.ConnectURL(kp.Public, s.redirects.For(domain.ActionConnect, id), s.opts.Cluster)
	if err != nil {
		crypto.WipeKeypair(&kp)
		return domain.Link{}, err
	}

	req := domain.PendingRequest{
		ID:        id,
		Action:    domain.ActionConnect,
		StartedAt: s.now(),
		Keypair:   &kp,
	}
	if err := s.pendings.SavePending(req); err != nil {
		crypto.WipeKeypair(&kp)
		return domain.Link{}, fmt.Errorf("persist pending request: %w", err)
	}
	s.pending = &req
	s.lastErr = nil
	s.record(domain.StateDisconnected, domain.StateConnecting, domain.ActionConnect, id, nil)

	link := domain.Link{Action: domain.ActionConnect, URL: raw, CorrelationID: id}
	s.log.Info("connect requested",
		zap.String("cid", id.String()),
		zap.String("dapp_key", crypto.Fingerprint(kp.Public)))

	if err := s.nav.Navigate(ctx, link); err != nil {
		s.abandonLocked(domain.WrapError(domain.KindInternal, "navigate to wallet", err))
		return domain.Link{}, err
	}
	return link, nil
}

// Disconnect ends the live session.
//
// The session secret, token and keypair are discarded unconditionally and the
// machine moves straight to Disconnected, whether or not the returned
// disconnect link is ever completed by the wallet. The wallet's answer, if it
// comes, is only acknowledged. A transaction still awaiting a signature is
// recorded as failed.
func (s *Service) Disconnect(ctx context.Context) (domain.Link, error) {
	s.mu.Lock()
	defer s.flush()
	defer s.mu.Unlock()

	if _, _, err := s.expireLocked(); err != nil {
		return domain.Link{}, err
	}
	if s.session == nil {
		return domain.Link{}, ErrNotConnected
	}
	sess := s.session
	from := s.stateLocked()

	// Build the link before wiping; the wipe happens whatever the outcome.
	var link domain.Link
	id, buildErr := newCorrelationID()
	if buildErr == nil {
		link, buildErr = s.actionLink(domain.ActionDisconnect, id, sess,
			domain.DisconnectPayload{Session: sess.Token.String()})
	}

	var rec *domain.TransactionRecord
	if s.pending != nil && s.pending.Action == domain.ActionSignAndSendTransaction {
		r := s.failedRecord(*s.pending, domain.NewError(domain.KindPrecondition, "wallet disconnected"))
		rec = &r
		s.appendRecord(ctx, r)
	}

	if err := s.pendings.ClearPending(); err != nil {
		s.log.Warn("clear pending request", zap.Error(err))
	}
	s.pending = nil
	if err := s.sessions.DeleteSession(); err != nil {
		s.log.Warn("delete session", zap.Error(err))
	}
	s.wipeSession()
	s.lastErr = nil
	s.record(from, domain.StateDisconnected, domain.ActionDisconnect, id, rec)

	if buildErr != nil {
		s.log.Warn("disconnect link not built; session discarded locally", zap.Error(buildErr))
		return domain.Link{}, buildErr
	}

	// Remember the request so the wallet's acknowledgement is recognised.
	ack := domain.PendingRequest{ID: id, Action: domain.ActionDisconnect, StartedAt: s.now()}
	if err := s.pendings.SavePending(ack); err != nil {
		s.log.Warn("persist disconnect acknowledgement", zap.Error(err))
	} else {
		s.pending = &ack
	}

	s.log.Info("disconnect requested", zap.String("cid", id.String()))
	if err := s.nav.Navigate(ctx, link); err != nil {
		return link, err
	}
	return link, nil
}

// SendTransaction asks the wallet to sign and send a transfer from the
// connected account.
//
// Steps:
//  1. Require a live session with no request in flight; nothing is built
//     otherwise.
//  2. Serialise an unsigned transfer and encrypt {session, transaction} under
//     the session secret.
//  3. Persist the correlation record, then navigate. The machine is in
//     AwaitingSignature until the response or the timeout resolves it.
func (s *Service) SendTransaction(ctx context.Context, req domain.TransactionRequest) (domain.Link, error) {
	s.mu.Lock()
	defer s.flush()
	defer s.mu.Unlock()

	if _, _, err := s.expireLocked(); err != nil {
		return domain.Link{}, err
	}
	if s.session == nil {
		return domain.Link{}, ErrNotConnected
	}
	if s.busyLocked() {
		return domain.Link{}, ErrBusy
	}
	if err := validateRequest(req); err != nil {
		return domain.Link{}, err
	}
	sess := s.session

	hash, err := s.opts.Blockhash(ctx)
	if err != nil {
		return domain.Link{}, domain.WrapError(domain.KindInternal, "recent blockhash", err)
	}
	txBytes, err := BuildTransfer(sess.Wallet.Account, req, hash)
	if err != nil {
		return domain.Link{}, domain.WrapError(domain.KindInternal, "build transaction", err)
	}
	id, err := newCorrelationID()
	if err != nil {
		return domain.Link{}, err
	}
	link, err := s.actionLink(domain.ActionSignAndSendTransaction, id, sess,
		domain.SignAndSendTransactionPayload{
			Session:     sess.Token.String(),
			Transaction: crypto.EncodeBase58(txBytes),
		})
	if err != nil {
		return domain.Link{}, err
	}

	pend := domain.PendingRequest{
		ID:          id,
		Action:      domain.ActionSignAndSendTransaction,
		StartedAt:   s.now(),
		Transaction: &req,
	}
	if err := s.pendings.SavePending(pend); err != nil {
		return domain.Link{}, fmt.Errorf("persist pending request: %w", err)
	}
	s.pending = &pend
	s.lastErr = nil
	s.record(domain.StateConnected, domain.StateAwaitingSignature, domain.ActionSignAndSendTransaction, id, nil)

	s.log.Info("transaction requested",
		zap.String("cid", id.String()),
		zap.Uint64("lamports", req.Lamports),
		zap.String("recipient", req.Recipient.String()))

	if err := s.nav.Navigate(ctx, link); err != nil {
		s.abandonLocked(domain.WrapError(domain.KindInternal, "navigate to wallet", err))
		return domain.Link{}, err
	}
	return link, nil
}

// HandleResponse consumes a redirect-back URL.
//
// A response is accepted only when its correlation id matches the pending
// record and that record is still within the response timeout. Anything else
// is stale: no transition happens and a still-valid pending record is kept.
// The record is cleared from storage before the response is acted on, so a
// second delivery of the same URL is always stale.
//
// Protocol failures (wallet error, decryption failure, malformed response)
// resolve the flow and are reported in Transition.Err; the returned error is
// reserved for stale responses and storage failures.
func (s *Service) HandleResponse(ctx context.Context, u *url.URL) (domain.Transition, error) {
	s.mu.Lock()
	defer s.flush()
	defer s.mu.Unlock()

	if _, _, err := s.expireLocked(); err != nil {
		return domain.Transition{}, err
	}

	resp := deeplink.Classify(u)
	state := s.stateLocked()
	noop := domain.Transition{
		From:          state,
		To:            state,
		Action:        resp.Action,
		CorrelationID: resp.CorrelationID,
		At:            s.now(),
	}

	pend := s.pending
	switch {
	case pend == nil:
		return s.stale(noop, "no request is pending")
	case resp.CorrelationID == "":
		return s.stale(noop, "response carries no correlation id")
	case resp.CorrelationID != pend.ID:
		return s.stale(noop, fmt.Sprintf("correlation id %q does not match", resp.CorrelationID))
	case resp.Action != "" && resp.Action != pend.Action:
		return s.stale(noop, fmt.Sprintf("%s response for pending %s", resp.Action, pend.Action))
	}

	// Read-then-clear: the record leaves storage before anything else happens.
	if err := s.pendings.ClearPending(); err != nil {
		return noop, fmt.Errorf("clear pending request: %w", err)
	}
	s.pending = nil

	switch pend.Action {
	case domain.ActionConnect:
		return s.resolveConnect(*pend, resp), nil
	case domain.ActionSignAndSendTransaction:
		return s.resolveTransaction(ctx, *pend, resp), nil
	default:
		out := deeplink.ParseResponse(resp, deeplink.KeyState{})
		s.log.Info("disconnect acknowledged",
			zap.String("cid", pend.ID.String()),
			zap.String("outcome", out.Kind.String()))
		noop.Action = domain.ActionDisconnect
		return noop, nil
	}
}

// Expire resolves a flow whose response timeout has elapsed: a connect
// attempt falls back to Disconnected, a transaction to Connected with a
// failed record. ok reports whether a flow was resolved.
func (s *Service) Expire(ctx context.Context) (domain.Transition, bool, error) {
	s.mu.Lock()
	defer s.flush()
	defer s.mu.Unlock()
	return s.expireLocked()
}

// State returns the current state.
func (s *Service) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Snapshot returns an immutable view of the machine.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every transition and returns a function that
// removes it.
func (s *Service) Subscribe(fn func(domain.Transition)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) resolveConnect(pend domain.PendingRequest, resp deeplink.Response) domain.Transition {
	defer crypto.WipeKeypair(pend.Keypair)

	out := deeplink.ParseResponse(resp, deeplink.KeyState{Keypair: pend.Keypair})
	sess, err := s.sessionFrom(pend, out)
	if err != nil {
		s.lastErr, s.lastAction = err, domain.ActionConnect
		s.log.Info("connect failed",
			zap.String("cid", pend.ID.String()),
			zap.String("outcome", out.Kind.String()),
			zap.Error(err))
		return s.record(domain.StateConnecting, domain.StateDisconnected, domain.ActionConnect, pend.ID, nil, err)
	}

	if err := s.sessions.SaveSession(sess); err != nil {
		crypto.WipeSecret(&sess.Shared)
		err = domain.WrapError(domain.KindInternal, "persist session", err)
		s.lastErr, s.lastAction = err, domain.ActionConnect
		return s.record(domain.StateConnecting, domain.StateDisconnected, domain.ActionConnect, pend.ID, nil, err)
	}
	s.session = &sess
	s.lastErr = nil

	w := sess.Wallet
	s.log.Info("connected",
		zap.String("cid", pend.ID.String()),
		zap.String("account", w.Account.String()),
		zap.String("wallet_key", crypto.Fingerprint(w.EncryptionKey)))
	t := s.transition(domain.StateConnecting, domain.StateConnected, domain.ActionConnect, pend.ID)
	t.Wallet = &w
	return s.queue(t)
}

// sessionFrom validates a connect outcome and assembles the session it
// establishes. A connect only succeeds with an encrypted payload: a raw
// public key carries neither a session token nor a shared secret.
func (s *Service) sessionFrom(pend domain.PendingRequest, out deeplink.Outcome) (domain.Session, error) {
	if !out.OK() {
		return domain.Session{}, out.Err
	}
	if out.Installed == nil || out.PeerKey == nil {
		return domain.Session{}, ErrNoSession
	}
	var data domain.ConnectData
	if err := out.Decode(&data); err != nil {
		return domain.Session{}, err
	}
	if data.Session == "" {
		return domain.Session{}, ErrNoSession
	}
	account, err := solana.PublicKeyFromBase58(data.PublicKey)
	if err != nil {
		return domain.Session{}, domain.WrapError(domain.KindMalformed, "wallet public key", err)
	}
	return domain.Session{
		Method:       domain.MethodDeepLink,
		Token:        domain.SessionToken(data.Session),
		Wallet:       domain.WalletIdentity{Account: account, EncryptionKey: *out.PeerKey},
		Keypair:      *pend.Keypair,
		Shared:       *out.Installed,
		Cluster:      s.opts.Cluster,
		ConnectedUTC: s.now().Unix(),
	}, nil
}

func (s *Service) resolveTransaction(ctx context.Context, pend domain.PendingRequest, resp deeplink.Response) domain.Transition {
	var err error
	var signature string
	if s.session == nil {
		err = ErrNotConnected
	} else {
		out := deeplink.ParseResponse(resp, deeplink.KeyState{Shared: &s.session.Shared})
		signature, err = signatureFrom(out)
	}

	var rec domain.TransactionRecord
	if err != nil {
		rec = s.failedRecord(pend, err)
		s.lastErr, s.lastAction = err, domain.ActionSignAndSendTransaction
		s.log.Info("transaction failed", zap.String("cid", pend.ID.String()), zap.Error(err))
	} else {
		rec = s.newRecord(pend)
		rec.Success = true
		rec.Signature = signature
		s.lastErr = nil
		s.log.Info("transaction signed",
			zap.String("cid", pend.ID.String()),
			zap.String("signature", signature),
			zap.Duration("duration", rec.Duration))
	}
	s.appendRecord(ctx, rec)
	return s.record(domain.StateAwaitingSignature, domain.StateConnected, domain.ActionSignAndSendTransaction, pend.ID, &rec, err)
}

// signatureFrom extracts and validates the transaction signature from an
// encrypted or raw success.
func signatureFrom(out deeplink.Outcome) (string, error) {
	if !out.OK() {
		return "", out.Err
	}
	sig := out.Raw
	if out.Response.Kind == deeplink.KindEncrypted {
		var data domain.SignatureData
		if err := out.Decode(&data); err != nil {
			return "", err
		}
		sig = data.Signature
	} else if out.Response.RawParam != deeplink.ParamSignature {
		return "", domain.NewError(domain.KindMalformed, "response carries no signature")
	}
	if _, err := solana.SignatureFromBase58(sig); err != nil {
		return "", domain.WrapError(domain.KindMalformed, "transaction signature", err)
	}
	return sig, nil
}

// expireLocked resolves the pending flow if its timeout has elapsed.
func (s *Service) expireLocked() (domain.Transition, bool, error) {
	p := s.pending
	if p == nil || !p.Expired(s.now(), s.opts.ResponseTimeout) {
		return domain.Transition{}, false, nil
	}
	if err := s.pendings.ClearPending(); err != nil {
		return domain.Transition{}, false, fmt.Errorf("clear expired request: %w", err)
	}
	s.pending = nil
	s.log.Info("request timed out",
		zap.String("cid", p.ID.String()),
		zap.String("action", p.Action.String()),
		zap.Duration("age", p.Age(s.now())))

	switch p.Action {
	case domain.ActionConnect:
		crypto.WipeKeypair(p.Keypair)
		s.lastErr, s.lastAction = ErrTimeout, domain.ActionConnect
		return s.record(domain.StateConnecting, domain.StateDisconnected, domain.ActionConnect, p.ID, nil, ErrTimeout), true, nil
	case domain.ActionSignAndSendTransaction:
		rec := s.failedRecord(*p, ErrTimeout)
		s.appendRecord(context.Background(), rec)
		s.lastErr, s.lastAction = ErrTimeout, domain.ActionSignAndSendTransaction
		return s.record(domain.StateAwaitingSignature, domain.StateConnected, domain.ActionSignAndSendTransaction, p.ID, &rec, ErrTimeout), true, nil
	}
	// An unanswered disconnect needs no resolution.
	return domain.Transition{}, false, nil
}

// abandonLocked unwinds a request that never left, e.g. when navigation
// failed.
func (s *Service) abandonLocked(err error) {
	p := s.pending
	if p == nil {
		return
	}
	if cerr := s.pendings.ClearPending(); cerr != nil {
		s.log.Warn("clear pending request", zap.Error(cerr))
	}
	s.pending = nil
	s.lastErr, s.lastAction = err, p.Action

	switch p.Action {
	case domain.ActionConnect:
		crypto.WipeKeypair(p.Keypair)
		s.record(domain.StateConnecting, domain.StateDisconnected, p.Action, p.ID, nil, err)
	case domain.ActionSignAndSendTransaction:
		rec := s.failedRecord(*p, err)
		s.appendRecord(context.Background(), rec)
		s.record(domain.StateAwaitingSignature, domain.StateConnected, p.Action, p.ID, &rec, err)
	}
}

func (s *Service) actionLink(action domain.Action, id domain.CorrelationID, sess *domain.Session, payload any) (domain.Link, error) {
	enc, err := deeplink.Seal(payload, &sess.Shared)
	if err != nil {
		return domain.Link{}, err
	}
	raw, err := s.builder.ActionURL(action, sess.Token, enc, sess.Keypair.Public, s.redirects.For(action, id))
	if err != nil {
		return domain.Link{}, err
	}
	return domain.Link{Action: action, URL: raw, CorrelationID: id}, nil
}

func (s *Service) stateLocked() domain.State {
	p := s.pending
	switch {
	case s.session == nil && p != nil && p.Action == domain.ActionConnect:
		return domain.StateConnecting
	case s.session == nil:
		return domain.StateDisconnected
	case p != nil && p.Action == domain.ActionSignAndSendTransaction:
		return domain.StateAwaitingSignature
	default:
		return domain.StateConnected
	}
}

// busyLocked reports whether a connect or transaction request is in flight.
// An outstanding disconnect acknowledgement never blocks.
func (s *Service) busyLocked() bool {
	return s.pending != nil && s.pending.Action != domain.ActionDisconnect
}

func (s *Service) stale(t domain.Transition, detail string) (domain.Transition, error) {
	s.log.Info("stale response ignored", zap.String("cid", t.CorrelationID.String()), zap.String("reason", detail))
	t.Err = domain.WrapError(domain.KindStale, ErrStale.Message, errors.New(detail))
	return t, t.Err
}

func (s *Service) wipeSession() {
	if s.session == nil {
		return
	}
	crypto.WipeSecret(&s.session.Shared)
	crypto.WipeKeypair(&s.session.Keypair)
	s.session = nil
}

func (s *Service) newRecord(p domain.PendingRequest) domain.TransactionRecord {
	now := s.now()
	rec := domain.TransactionRecord{
		ID:        p.ID.String(),
		Timestamp: now.UTC(),
		Method:    domain.MethodDeepLink,
		Duration:  p.Age(now),
	}
	if p.Transaction != nil {
		rec.Lamports = p.Transaction.Lamports
		rec.Recipient = p.Transaction.Recipient.String()
	}
	return rec
}

func (s *Service) failedRecord(p domain.PendingRequest, err error) domain.TransactionRecord {
	rec := s.newRecord(p)
	rec.Reason = domain.UserMessage(domain.ActionSignAndSendTransaction, err)
	return rec
}

func (s *Service) appendRecord(ctx context.Context, rec domain.TransactionRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.AppendTransaction(ctx, rec); err != nil {
		s.log.Warn("append transaction record", zap.String("id", rec.ID), zap.Error(err))
	}
}

// record queues a transition for observers and returns it. errs, when
// given, holds the failure that forced it.
func (s *Service) record(
	from, to domain.State,
	action domain.Action,
	id domain.CorrelationID,
	rec *domain.TransactionRecord,
	errs ...error,
) domain.Transition {
	t := s.transition(from, to, action, id)
	t.Record = rec
	if len(errs) > 0 {
		t.Err = errs[0]
	}
	return s.queue(t)
}

func (s *Service) transition(from, to domain.State, action domain.Action, id domain.CorrelationID) domain.Transition {
	return domain.Transition{
		From:          from,
		To:            to,
		Action:        action,
		CorrelationID: id,
		At:            s.now(),
	}
}

func (s *Service) queue(t domain.Transition) domain.Transition {
	s.queued = append(s.queued, t)
	return t
}

// flush delivers queued transitions. It runs after the state lock is
// released so observers may call back into the Service.
func (s *Service) flush() {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.mu.Unlock()
	if len(queued) == 0 {
		return
	}

	s.subMu.Lock()
	subs := make([]func(domain.Transition), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, t := range queued {
		for _, fn := range subs {
			fn(t)
		}
	}
}

func (s *Service) now() time.Time { return s.opts.Clock() }

// keypairIntact reports whether kp is present and its public half still
// matches its private half.
func keypairIntact(kp *domain.Keypair) bool {
	if kp == nil {
		return false
	}
	pub, err := crypto.PublicFromPrivate(kp.Private)
	return err == nil && pub == kp.Public
}

func newCorrelationID() (domain.CorrelationID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", domain.WrapError(domain.KindInternal, "correlation id", err)
	}
	return domain.CorrelationID(id.String()), nil
}
