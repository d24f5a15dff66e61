package deeplink_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/protocol/deeplink"
)

const testApp = "https://dapp.example"

func newBuilder(t *testing.T, mutate func(*deeplink.Config)) *deeplink.Builder {
	t.Helper()
	cfg := deeplink.Config{
		Scheme:        "phantom",
		UniversalBase: "https://phantom.app/ul",
		AppURL:        testApp,
		Style:         deeplink.StyleUniversal,
		Platform:      deeplink.PlatformDesktop,
		FallbackPath:  "/open",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	b, err := deeplink.NewBuilder(cfg)
	require.NoError(t, err)
	return b
}

func TestConnectURLCarriesParams(t *testing.T) {
	b := newBuilder(t, nil)
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	redirect := testApp + "/wallet/onConnect?cid=abc"

	raw, err := b.ConnectURL(kp.Public, redirect, domain.ClusterDevnet)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "phantom.app", u.Host)
	require.Equal(t, "/ul/v1/connect", u.Path)
	q := u.Query()
	require.Equal(t, crypto.EncodeBase58(kp.Public[:]), q.Get(deeplink.ParamDappEncryptionPublicKey))
	require.Equal(t, "devnet", q.Get(deeplink.ParamCluster))
	require.Equal(t, testApp, q.Get(deeplink.ParamAppURL))
	require.Equal(t, redirect, q.Get(deeplink.ParamRedirectLink))
}

func TestConnectURLSchemeStyle(t *testing.T) {
	b := newBuilder(t, func(c *deeplink.Config) { c.Style = deeplink.StyleScheme })
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	raw, err := b.ConnectURL(kp.Public, testApp+"/wallet/onConnect", domain.ClusterMainnet)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "phantom://v1/connect?"), raw)
}

func TestConnectURLRejectsRelativeRedirect(t *testing.T) {
	b := newBuilder(t, nil)
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	_, err = b.ConnectURL(kp.Public, "/wallet/onConnect", domain.ClusterDevnet)
	require.True(t, domain.IsKind(err, domain.KindPrecondition))
}

func TestActionURLNeverCarriesSessionToken(t *testing.T) {
	b := newBuilder(t, nil)
	dapp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	wallet, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	secret, err := crypto.DeriveSharedSecret(dapp.Private, wallet.Public)
	require.NoError(t, err)

	token := domain.SessionToken("session-token-do-not-leak")
	enc, err := deeplink.Seal(domain.SignAndSendTransactionPayload{
		Session:     token.String(),
		Transaction: "raw-transaction-bytes",
	}, &secret)
	require.NoError(t, err)

	raw, err := b.ActionURL(domain.ActionSignAndSendTransaction, token, enc, dapp.Public, testApp+"/wallet/onSignAndSendTransaction")
	require.NoError(t, err)
	require.NotContains(t, raw, token.String())
	require.NotContains(t, raw, "raw-transaction-bytes")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "/ul/v1/signAndSendTransaction", u.Path)
	q := u.Query()
	require.NotEmpty(t, q.Get(deeplink.ParamNonce))
	require.NotEmpty(t, q.Get(deeplink.ParamPayload))

	nonce, err := crypto.DecodeNonce(q.Get(deeplink.ParamNonce))
	require.NoError(t, err)
	ct, err := crypto.DecodeBase58(q.Get(deeplink.ParamPayload))
	require.NoError(t, err)
	var got domain.SignAndSendTransactionPayload
	require.NoError(t, crypto.Decrypt(ct, nonce, &secret, &got))
	require.Equal(t, token.String(), got.Session)
}

func TestActionURLPreconditions(t *testing.T) {
	b := newBuilder(t, nil)
	dapp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	enc := deeplink.EncryptedPayload{Ciphertext: []byte{1, 2, 3}}
	redirect := testApp + "/wallet/onDisconnect"

	tests := []struct {
		name    string
		action  domain.Action
		session domain.SessionToken
		enc     deeplink.EncryptedPayload
	}{
		{"connect is not authenticated", domain.ActionConnect, "s1", enc},
		{"missing session", domain.ActionDisconnect, "", enc},
		{"missing payload", domain.ActionDisconnect, "s1", deeplink.EncryptedPayload{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := b.ActionURL(tc.action, tc.session, tc.enc, dapp.Public, redirect)
			require.Error(t, err)
			require.Empty(t, raw)
		})
	}
}

func TestStrippingPlatformUsesFallback(t *testing.T) {
	b := newBuilder(t, func(c *deeplink.Config) {
		c.Style = deeplink.StyleScheme
		c.Platform = deeplink.PlatformIOSChrome
	})
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	raw, err := b.ConnectURL(kp.Public, testApp+"/wallet/onConnect", domain.ClusterDevnet)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, testApp+"/open?link="), raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	link, ok := deeplink.Unwrap(u)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(link, "https://phantom.app/ul/v1/connect?"), link)
}

func TestStrippingPlatformWithoutFallback(t *testing.T) {
	b := newBuilder(t, func(c *deeplink.Config) {
		c.Style = deeplink.StyleScheme
		c.Platform = deeplink.PlatformIOSWebView
		c.FallbackPath = ""
	})
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	raw, err := b.ConnectURL(kp.Public, testApp+"/wallet/onConnect", domain.ClusterDevnet)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "https://phantom.app/ul/v1/connect?"), raw)
}

func TestBrowseURL(t *testing.T) {
	b := newBuilder(t, nil)
	raw, err := b.BrowseURL(testApp + "/swap")
	require.NoError(t, err)
	require.Equal(t, "https://phantom.app/ul/browse/https:%2F%2Fdapp.example%2Fswap?ref=https%3A%2F%2Fdapp.example", raw)
}

func TestIsWalletLink(t *testing.T) {
	b := newBuilder(t, nil)
	require.True(t, b.IsWalletLink("https://phantom.app/ul/v1/connect?x=1"))
	require.True(t, b.IsWalletLink("phantom://v1/connect?x=1"))
	require.False(t, b.IsWalletLink("https://phantom.app.evil.example/ul/v1/connect"))
	require.False(t, b.IsWalletLink("https://evil.example/?u=https://phantom.app/ul/"))
}

func TestDetectPlatform(t *testing.T) {
	tests := map[string]deeplink.Platform{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 CriOS/120.0 Mobile/15E148 Safari/604.1": deeplink.PlatformIOSChrome,
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1": deeplink.PlatformIOSSafari,
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148":                            deeplink.PlatformIOSWebView,
		"Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36":                                deeplink.PlatformAndroid,
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36":                                       deeplink.PlatformDesktop,
	}
	for ua, want := range tests {
		require.Equal(t, want, deeplink.DetectPlatform(ua), ua)
	}
}

func TestRedirects(t *testing.T) {
	r, err := deeplink.NewRedirects(testApp, "")
	require.NoError(t, err)

	require.Equal(t, testApp+"/wallet/onConnect?cid=abc", r.For(domain.ActionConnect, "abc"))
	require.Equal(t, testApp+"/wallet/onSignAndSendTransaction?cid=x", r.For(domain.ActionSignAndSendTransaction, "x"))
	require.Equal(t, "/wallet", r.Prefix())

	for _, a := range []domain.Action{domain.ActionConnect, domain.ActionDisconnect, domain.ActionSignAndSendTransaction} {
		got, ok := deeplink.ActionFromPath(r.Path(a))
		require.True(t, ok)
		require.Equal(t, a, got)
	}
	_, ok := deeplink.ActionFromPath("/wallet/onSomethingElse")
	require.False(t, ok)
}
