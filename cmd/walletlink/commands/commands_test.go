package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"walletlink/internal/domain"
	"walletlink/internal/walletsim"
)

func setup(t *testing.T) *walletsim.Wallet {
	t.Helper()
	wallet, err := walletsim.New(walletsim.Options{})
	require.NoError(t, err)
	sim := httptest.NewServer(wallet.Handler())
	t.Cleanup(sim.Close)

	t.Setenv("WALLETLINK_HOME", t.TempDir())
	t.Setenv("WALLETLINK_LOG_LEVEL", "off")
	t.Setenv("WALLETLINK_APP_URL", "https://dapp.example")
	t.Setenv("WALLETLINK_UNIVERSAL_BASE", sim.URL+"/ul")
	return wallet
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimulatedSession(t *testing.T) {
	wallet := setup(t)

	out, err := run(t, "connect", "--sim")
	require.NoError(t, err)
	require.Contains(t, out, "Connected to "+wallet.Account().String())

	out, err = run(t, "status", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"state": "connected"`)

	out, err = run(t, "send", solana.NewWallet().PublicKey().String(), "0.25", "--sim")
	require.NoError(t, err)
	require.Contains(t, out, "Transaction signed:")
	require.Contains(t, out, "(0.25 SOL)")

	out, err = run(t, "history")
	require.NoError(t, err)
	require.Contains(t, out, "1 transactions, 100% succeeded, 0.25 SOL sent")

	out, err = run(t, "disconnect", "--sim")
	require.NoError(t, err)
	require.Contains(t, out, "Disconnected.")
	require.Zero(t, wallet.Sessions())

	out, err = run(t, "status")
	require.NoError(t, err)
	require.Contains(t, out, "State:   disconnected")
}

var linkRe = regexp.MustCompile(`(?m)^(http\S+/ul/v1/connect\?\S+)$`)

func TestReceiveInLaterInvocation(t *testing.T) {
	setup(t)

	out, err := run(t, "connect")
	require.NoError(t, err)
	m := linkRe.FindStringSubmatch(out)
	require.Len(t, m, 2, out)

	back, err := walletsim.NewClient(nil).Open(context.Background(), m[1])
	require.NoError(t, err)

	out, err = run(t, "receive", back.String())
	require.NoError(t, err)
	require.Contains(t, out, "State: connected")

	// A fresh process has no memory of the consumed URL; the cleared
	// correlation record makes the replay stale.
	_, err = run(t, "receive", back.String())
	require.Error(t, err)

	out, err = run(t, "status")
	require.NoError(t, err)
	require.Contains(t, out, "State:   connected")
}

func TestReceiveRejectsRelativeURL(t *testing.T) {
	setup(t)
	_, err := run(t, "receive", "/wallet/onConnect?cid=x")
	require.Error(t, err)
}

func TestSendRequiresConnection(t *testing.T) {
	setup(t)
	_, err := run(t, "send", solana.NewWallet().PublicKey().String(), "1")
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		lamports bool
		want     uint64
		wantErr  bool
	}{
		{in: "1.5", want: 1_500_000_000},
		{in: "0.033000099", want: 33_000_099},
		{in: "42", lamports: true, want: 42},
		{in: "-1", wantErr: true},
		{in: "0", wantErr: true},
		{in: "2e10", wantErr: true},
		{in: "1e11", wantErr: true},
		{in: "1.0000000001", wantErr: true},
		{in: "99999999999", wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseAmount(tc.in, tc.lamports)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestBrowse(t *testing.T) {
	setup(t)
	out, err := run(t, "browse", "https://dapp.example/swap")
	require.NoError(t, err)
	require.Contains(t, out, "/ul/browse/https:%2F%2Fdapp.example%2Fswap?ref=")
}

func TestPrintLinkWithQR(t *testing.T) {
	link := domain.Link{Action: domain.ActionConnect, URL: "https://phantom.app/ul/v1/connect?cluster=devnet"}

	var plain, withQR bytes.Buffer
	require.NoError(t, printLink(&plain, link, false))
	require.NoError(t, printLink(&withQR, link, true))

	require.Contains(t, withQR.String(), link.URL)
	require.True(t, strings.HasSuffix(withQR.String(), plain.String()))
	require.Greater(t, strings.Count(withQR.String(), "\n"), strings.Count(plain.String(), "\n")+10)
}
