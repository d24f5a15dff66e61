package crypto

import "walletlink/internal/domain"

var (
	// ErrDecryptionFailed is returned when authentication fails: tampered
	// data, wrong secret or wrong nonce.
	ErrDecryptionFailed = domain.NewError(domain.KindDecryptionFailed, "decryption failed")

	// ErrNoSharedSecret guards every codec operation attempted before a
	// shared secret was installed.
	ErrNoSharedSecret = domain.NewError(domain.KindDecryptionFailed, "no shared secret")

	// ErrInvalidPeerKey is returned for peer keys that yield no usable secret.
	ErrInvalidPeerKey = domain.NewError(domain.KindDecryptionFailed, "invalid peer public key")

	// ErrBadEncoding is returned for Base58 values of the wrong shape.
	ErrBadEncoding = domain.NewError(domain.KindMalformed, "bad base58 value")
)
