package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

func TestBase58_KeyAndNonce(t *testing.T) {
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	got, err := crypto.DecodeKey32(crypto.EncodeBase58(kp.Public[:]))
	require.NoError(t, err)
	require.Equal(t, kp.Public, got)

	var nonce domain.Nonce
	for i := range nonce {
		nonce[i] = byte(i + 1)
	}
	n, err := crypto.DecodeNonce(crypto.EncodeBase58(nonce[:]))
	require.NoError(t, err)
	require.Equal(t, nonce, n)
}

func TestBase58_Rejects(t *testing.T) {
	_, err := crypto.DecodeBase58("")
	require.True(t, domain.IsKind(err, domain.KindMalformed))

	_, err = crypto.DecodeBase58("0OIl")
	require.True(t, domain.IsKind(err, domain.KindMalformed))

	_, err = crypto.DecodeKey32(crypto.EncodeBase58([]byte{1, 2, 3}))
	require.ErrorIs(t, err, crypto.ErrBadEncoding)

	_, err = crypto.DecodeNonce(crypto.EncodeBase58(make([]byte, 32)))
	require.ErrorIs(t, err, crypto.ErrBadEncoding)
}

func TestFingerprint_Stable(t *testing.T) {
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	require.Len(t, crypto.Fingerprint(kp.Public), 12)
	require.Equal(t, crypto.Fingerprint(kp.Public), crypto.Fingerprint(kp.Public))
}
