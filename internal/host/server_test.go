package host

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"walletlink/internal/app"
	"walletlink/internal/domain"
	"walletlink/internal/walletsim"
)

type env struct {
	t      *testing.T
	wallet *walletsim.Wallet
	phone  *walletsim.Client
	dapp   *httptest.Server
	wire   *app.Wire
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	wallet, err := walletsim.New(walletsim.Options{})
	require.NoError(t, err)
	sim := httptest.NewServer(wallet.Handler())
	t.Cleanup(sim.Close)

	cfg := app.Config{
		Home:           t.TempDir(),
		AppURL:         "https://dapp.example",
		RedirectPrefix: "/wallet",
		FallbackPath:   "/open",
		WalletScheme:   "phantom",
		UniversalBase:  sim.URL + "/ul",
		LinkStyle:      "universal",
		Platform:       "desktop",
		Cluster:        "devnet",
	}
	wire, err := app.NewWire(ctx, cfg, Navigator(nil), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wire.Close() })

	dapp := httptest.NewServer(New(wire).Handler())
	t.Cleanup(dapp.Close)

	return &env{t: t, wallet: wallet, phone: walletsim.NewClient(sim.Client()), dapp: dapp, wire: wire}
}

func (e *env) do(method, path string, body any, out any) int {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.dapp.URL+path, &buf)
	require.NoError(e.t, err)
	client := *e.dapp.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(e.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// start issues a flow and returns the URL the wallet redirects back to.
func (e *env) start(path string, body any) *url.URL {
	e.t.Helper()
	var link linkView
	require.Equal(e.t, http.StatusOK, e.do(http.MethodPost, path, body, &link))
	back, err := e.phone.Open(context.Background(), link.URL)
	require.NoError(e.t, err)
	require.Equal(e.t, "dapp.example", back.Host)
	return back
}

func (e *env) land(back *url.URL) (int, callbackView) {
	e.t.Helper()
	var view callbackView
	code := e.do(http.MethodGet, back.RequestURI(), nil, &view)
	return code, view
}

func TestRoundTrip(t *testing.T) {
	e := newEnv(t)

	// connect
	back := e.start("/connect", nil)
	code, view := e.land(back)
	require.Equal(t, http.StatusOK, code)
	require.True(t, view.Handled)
	require.Equal(t, domain.StateConnected, view.Transition.To)
	require.Equal(t, e.wallet.Account(), view.Transition.Wallet.Account)
	require.Equal(t, domain.StateConnected, view.Status.State)

	// the same redirect again, e.g. back button
	code, view = e.land(back)
	require.Equal(t, http.StatusOK, code)
	require.True(t, view.Duplicate)
	require.False(t, view.Handled)

	// transaction
	back = e.start("/transactions", map[string]any{
		"recipient": solana.NewWallet().PublicKey().String(),
		"sol":       0.5,
	})
	code, view = e.land(back)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, domain.StateAwaitingSignature, view.Transition.From)
	require.Equal(t, domain.StateConnected, view.Transition.To)
	require.NotNil(t, view.Transition.Record)
	require.True(t, view.Transition.Record.Success)
	require.NotEmpty(t, view.Transition.Record.Signature)

	var hist historyView
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/transactions", nil, &hist))
	require.Len(t, hist.Transactions, 1)
	require.Equal(t, 1, hist.Summary.Succeeded)
	require.Equal(t, uint64(500_000_000), hist.Summary.TotalLamports)

	// disconnect
	back = e.start("/disconnect", nil)
	var status map[string]any
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/status", nil, &status))
	require.Equal(t, string(domain.StateDisconnected), status["state"])

	code, view = e.land(back)
	require.Equal(t, http.StatusOK, code)
	require.True(t, view.Handled)
	require.Equal(t, domain.StateDisconnected, view.Status.State)
	require.Zero(t, e.wallet.Sessions())
}

func TestConnectRejected(t *testing.T) {
	e := newEnv(t)
	e.wallet.SetReject(true)

	code, view := e.land(e.start("/connect", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, domain.StateDisconnected, view.Transition.To)
	require.Equal(t, domain.KindWalletError.String(), view.Transition.Kind)
	require.Equal(t, "User rejected the request", view.Transition.Error)
	require.Equal(t, "User rejected the request", view.Status.LastError)
}

func TestBusyAndPreconditions(t *testing.T) {
	e := newEnv(t)

	var errView errorView
	require.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/disconnect", nil, &errView))
	require.Equal(t, domain.KindPrecondition.String(), errView.Kind)

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/connect", nil, nil))
	require.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/connect", nil, &errView))

	require.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/transactions", map[string]any{"recipient": "not-a-key"}, nil))
}

func TestSendTransactionSOLAmounts(t *testing.T) {
	e := newEnv(t)
	code, _ := e.land(e.start("/connect", nil))
	require.Equal(t, http.StatusOK, code)

	recipient := solana.NewWallet().PublicKey().String()
	code, view := e.land(e.start("/transactions", map[string]any{
		"recipient": recipient,
		"sol":       json.Number("0.033000099"),
	}))
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, view.Transition.Record)
	require.Equal(t, uint64(33_000_099), view.Transition.Record.Lamports)

	for _, sol := range []string{"2e10", "1.0000000001", "-1"} {
		var errView errorView
		require.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/transactions", map[string]any{
			"recipient": recipient,
			"sol":       json.Number(sol),
		}, &errView), sol)
		require.Equal(t, domain.KindPrecondition.String(), errView.Kind)
	}
	require.Equal(t, domain.StateConnected, e.wire.Session.State())
}

func TestStaleCallback(t *testing.T) {
	e := newEnv(t)

	var errView errorView
	code := e.do(http.MethodGet, "/wallet/onConnect?cid=unknown&errorCode=4001", nil, &errView)
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, domain.KindStale.String(), errView.Kind)
	require.Equal(t, domain.StateDisconnected, e.wire.Session.State())
}

func TestCallbackWithoutResponse(t *testing.T) {
	e := newEnv(t)
	require.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/wallet/onConnect", nil, nil))
	require.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/wallet/onSomethingElse?cid=x", nil, nil))
}

func TestOpenFallback(t *testing.T) {
	e := newEnv(t)

	var link linkView
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/connect", nil, &link))

	q := url.Values{"link": {link.URL}}
	req, err := http.NewRequest(http.MethodGet, e.dapp.URL+"/open?"+q.Encode(), nil)
	require.NoError(t, err)
	client := *e.dapp.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, link.URL, resp.Header.Get("Location"))

	q = url.Values{"link": {"https://evil.example/phish"}}
	require.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/open?"+q.Encode(), nil, nil))
}

func TestBrowse(t *testing.T) {
	e := newEnv(t)
	var out map[string]string
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/browse", nil, &out))
	require.Contains(t, out["url"], "/ul/browse/")
}
