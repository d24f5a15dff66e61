package crypto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

type connectBody struct {
	Session   string `json:"session"`
	PublicKey string `json:"public_key"`
}

func sharedPair(t *testing.T) (domain.SharedSecret, domain.SharedSecret) {
	t.Helper()
	dapp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	wallet, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	a, err := crypto.DeriveSharedSecret(dapp.Private, wallet.Public)
	require.NoError(t, err)
	b, err := crypto.DeriveSharedSecret(wallet.Private, dapp.Public)
	require.NoError(t, err)
	return a, b
}

func TestDeriveSharedSecret_Symmetric(t *testing.T) {
	for i := 0; i < 8; i++ {
		a, b := sharedPair(t)
		require.Equal(t, a, b)
		require.False(t, a.IsZero())
	}
}

func TestDeriveSharedSecret_Deterministic(t *testing.T) {
	dapp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	wallet, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	first, err := crypto.DeriveSharedSecret(dapp.Private, wallet.Public)
	require.NoError(t, err)
	second, err := crypto.DeriveSharedSecret(dapp.Private, wallet.Public)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDeriveSharedSecret_RejectsLowOrderPeer(t *testing.T) {
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	_, err = crypto.DeriveSharedSecret(kp.Private, domain.X25519Public{})
	require.Error(t, err)
	require.True(t, errors.Is(err, crypto.ErrInvalidPeerKey))
}

func TestGenerateKeypair_FreshEachCall(t *testing.T) {
	a, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	b, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	require.NotEqual(t, a.Public, b.Public)

	pub, err := crypto.PublicFromPrivate(a.Private)
	require.NoError(t, err)
	require.Equal(t, a.Public, pub)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	a, b := sharedPair(t)
	in := connectBody{Session: "s1", PublicKey: "W1"}

	nonce, ct, err := crypto.Encrypt(in, &a)
	require.NoError(t, err)

	var out connectBody
	require.NoError(t, crypto.Decrypt(ct, nonce, &b, &out))
	require.Equal(t, in, out)
}

func TestEncryptDecrypt_GenericJSON(t *testing.T) {
	a, _ := sharedPair(t)
	payloads := []any{
		map[string]any{"nested": map[string]any{"n": 1.5, "ok": true}},
		[]any{"x", 2.0, nil},
		"plain string",
		42.0,
	}
	for _, p := range payloads {
		nonce, ct, err := crypto.Encrypt(p, &a)
		require.NoError(t, err)
		var got any
		require.NoError(t, crypto.Decrypt(ct, nonce, &a, &got))
		require.Equal(t, p, got)
	}
}

func TestEncrypt_FreshNonceEveryCall(t *testing.T) {
	a, _ := sharedPair(t)
	in := connectBody{Session: "same"}

	n1, c1, err := crypto.Encrypt(in, &a)
	require.NoError(t, err)
	n2, c2, err := crypto.Encrypt(in, &a)
	require.NoError(t, err)

	require.NotEqual(t, n1, n2)
	require.NotEqual(t, c1, c2)
}

func TestDecrypt_Failures(t *testing.T) {
	a, _ := sharedPair(t)
	other, _ := sharedPair(t)

	nonce, ct, err := crypto.Encrypt(connectBody{Session: "s1"}, &a)
	require.NoError(t, err)

	wrongNonce := nonce
	wrongNonce[0] ^= 0xff

	tampered := append([]byte(nil), ct...)
	tampered[len(tampered)-1] ^= 0x01

	cases := []struct {
		name   string
		ct     []byte
		nonce  domain.Nonce
		secret *domain.SharedSecret
	}{
		{"wrong secret", ct, nonce, &other},
		{"wrong nonce", ct, wrongNonce, &a},
		{"tampered ciphertext", tampered, nonce, &a},
		{"truncated ciphertext", ct[:4], nonce, &a},
		{"no secret", ct, nonce, nil},
		{"zero secret", ct, nonce, &domain.SharedSecret{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out connectBody
			err := crypto.Decrypt(tc.ct, tc.nonce, tc.secret, &out)
			require.Error(t, err)
			require.True(t, domain.IsKind(err, domain.KindDecryptionFailed))
			require.Empty(t, out.Session)
		})
	}
}

func TestEncrypt_RequiresSecret(t *testing.T) {
	_, _, err := crypto.Encrypt(connectBody{}, nil)
	require.ErrorIs(t, err, crypto.ErrNoSharedSecret)
}
