package walletsim

import (
	"errors"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/logging"
	"walletlink/internal/protocol/deeplink"
)

// Options tune a Wallet.
type Options struct {
	// Reject makes every request fail with CodeUserRejected.
	Reject bool
	Logger *zap.Logger
}

type sessionEntry struct {
	dappKey domain.X25519Public
	shared  domain.SharedSecret
}

// Wallet is the simulated wallet. Its methods are safe for concurrent use.
type Wallet struct {
	account solana.PrivateKey
	enc     domain.Keypair
	reject  atomic.Bool
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]sessionEntry
}

// New returns a Wallet with a fresh account and encryption key.
func New(opts Options) (*Wallet, error) {
	enc, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	log := logging.OrNop(opts.Logger)
	w := &Wallet{
		account:  solana.NewWallet().PrivateKey,
		enc:      enc,
		log:      log.Named("walletsim"),
		sessions: make(map[string]sessionEntry),
	}
	w.reject.Store(opts.Reject)
	return w, nil
}

// Account returns the wallet's Solana account.
func (w *Wallet) Account() solana.PublicKey { return w.account.PublicKey() }

// EncryptionKey returns the wallet's X25519 public key.
func (w *Wallet) EncryptionKey() domain.X25519Public { return w.enc.Public }

// SetReject toggles rejection of every request.
func (w *Wallet) SetReject(v bool) { w.reject.Store(v) }

// Sessions returns the number of live sessions.
func (w *Wallet) Sessions() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.sessions)
}

// Respond answers one deep-link request and returns the redirect-back URL.
// The error is non-nil only when no redirect can be built at all.
func (w *Wallet) Respond(action domain.Action, q url.Values) (*url.URL, error) {
	redirect, err := url.Parse(q.Get(deeplink.ParamRedirectLink))
	if err != nil || !redirect.IsAbs() {
		return nil, errors.New("redirect_link must be an absolute url")
	}

	var out url.Values
	switch {
	case !action.Valid():
		err = invalidParams("unsupported method " + action.String())
	case w.reject.Load():
		err = rejectErr("User rejected the request")
	case action == domain.ActionConnect:
		out, err = w.connect(q)
	case action == domain.ActionDisconnect:
		err = w.disconnect(q)
	default:
		out, err = w.signAndSend(q)
	}

	if err != nil {
		var we *walletError
		if !errors.As(err, &we) {
			we = &walletError{Code: CodeInternal, Message: err.Error()}
		}
		w.log.Info("request refused",
			zap.String("action", action.String()),
			zap.Int("code", we.Code),
			zap.String("reason", we.Message))
		out = url.Values{}
		out.Set(deeplink.ParamErrorCode, strconv.Itoa(we.Code))
		out.Set(deeplink.ParamErrorMessage, we.Message)
	}
	return withParams(redirect, out), nil
}

func (w *Wallet) connect(q url.Values) (url.Values, error) {
	dappKey, err := crypto.DecodeKey32(q.Get(deeplink.ParamDappEncryptionPublicKey))
	if err != nil {
		return nil, invalidParams("invalid dapp_encryption_public_key")
	}
	shared, err := crypto.DeriveSharedSecret(w.enc.Private, dappKey)
	if err != nil {
		return nil, invalidParams("invalid dapp_encryption_public_key")
	}

	token := uuid.NewString()
	nonce, ct, err := crypto.Encrypt(domain.ConnectData{
		PublicKey: w.Account().String(),
		Session:   token,
	}, &shared)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.sessions[token] = sessionEntry{dappKey: dappKey, shared: shared}
	w.mu.Unlock()
	w.log.Info("connected",
		zap.String("dapp_key", crypto.Fingerprint(dappKey)),
		zap.String("cluster", q.Get(deeplink.ParamCluster)))

	out := url.Values{}
	out.Set(deeplink.ParamPhantomEncryptionPublicKey, crypto.EncodeBase58(w.enc.Public[:]))
	out.Set(deeplink.ParamNonce, crypto.EncodeBase58(nonce[:]))
	out.Set(deeplink.ParamData, crypto.EncodeBase58(ct))
	return out, nil
}

func (w *Wallet) disconnect(q url.Values) error {
	var body domain.DisconnectPayload
	token, err := w.open(q, &body, func() string { return body.Session })
	if err != nil {
		return err
	}
	w.mu.Lock()
	delete(w.sessions, token)
	w.mu.Unlock()
	w.log.Info("disconnected")
	return nil
}

func (w *Wallet) signAndSend(q url.Values) (url.Values, error) {
	var body domain.SignAndSendTransactionPayload
	token, err := w.open(q, &body, func() string { return body.Session })
	if err != nil {
		return nil, err
	}

	raw, err := crypto.DecodeBase58(body.Transaction)
	if err != nil {
		return nil, invalidParams("transaction is not base58")
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, invalidParams("transaction does not decode")
	}
	if len(tx.Message.AccountKeys) == 0 || !tx.Message.AccountKeys[0].Equals(w.Account()) {
		return nil, invalidParams("fee payer is not the connected account")
	}
	sigs, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.Account()) {
			return &w.account
		}
		return nil
	})
	if err != nil || len(sigs) == 0 {
		return nil, invalidParams("transaction cannot be signed by this wallet")
	}

	entry := w.entry(token)
	nonce, ct, err := crypto.Encrypt(domain.SignatureData{Signature: sigs[0].String()}, &entry.shared)
	if err != nil {
		return nil, err
	}
	w.log.Info("signed transaction", zap.String("signature", sigs[0].String()))

	out := url.Values{}
	out.Set(deeplink.ParamNonce, crypto.EncodeBase58(nonce[:]))
	out.Set(deeplink.ParamData, crypto.EncodeBase58(ct))
	return out, nil
}

// open decrypts the request payload into body and checks the session token
// returned by token against the sessions this wallet issued to the same dapp
// key.
func (w *Wallet) open(q url.Values, body any, token func() string) (string, error) {
	dappKey, err := crypto.DecodeKey32(q.Get(deeplink.ParamDappEncryptionPublicKey))
	if err != nil {
		return "", invalidParams("invalid dapp_encryption_public_key")
	}
	nonce, err := crypto.DecodeNonce(q.Get(deeplink.ParamNonce))
	if err != nil {
		return "", invalidParams("invalid nonce")
	}
	ct, err := crypto.DecodeBase58(q.Get(deeplink.ParamPayload))
	if err != nil {
		return "", invalidParams("invalid payload")
	}
	shared, err := crypto.DeriveSharedSecret(w.enc.Private, dappKey)
	if err != nil {
		return "", invalidParams("invalid dapp_encryption_public_key")
	}
	defer crypto.WipeSecret(&shared)
	if err := crypto.Decrypt(ct, nonce, &shared, body); err != nil {
		return "", unauthorized("payload does not decrypt")
	}

	t := token()
	entry := w.entry(t)
	if entry.dappKey != dappKey {
		return "", unauthorized("unknown session")
	}
	return t, nil
}

func (w *Wallet) entry(token string) sessionEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessions[token]
}

// withParams returns a copy of u with params added to its query. Existing
// parameters, such as the dapp's correlation id, are preserved.
func withParams(u *url.URL, params url.Values) *url.URL {
	out := *u
	q := out.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	out.RawQuery = q.Encode()
	return &out
}
