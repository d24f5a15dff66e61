package crypto

import (
	"crypto/rand"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/box"

	"walletlink/internal/domain"
)

// NonceSize is the box nonce length carried next to every ciphertext.
const NonceSize = 24

// Encrypt JSON-encodes payload and seals it under secret with a fresh random
// nonce. Two calls with the same payload never share a nonce or ciphertext.
func Encrypt(payload any, secret *domain.SharedSecret) (domain.Nonce, []byte, error) {
	var nonce domain.Nonce
	if secret.IsZero() {
		return nonce, nil, ErrNoSharedSecret
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nonce, nil, errors.Wrap(err, "encode payload")
	}
	defer Wipe(raw)

	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nonce, nil, errors.Wrap(err, "read nonce")
	}
	ct := box.SealAfterPrecomputation(nil, raw, (*[NonceSize]byte)(&nonce), (*[32]byte)(secret))
	return nonce, ct, nil
}

// DecryptRaw opens ciphertext under secret and returns the plaintext JSON.
func DecryptRaw(ciphertext []byte, nonce domain.Nonce, secret *domain.SharedSecret) ([]byte, error) {
	if secret.IsZero() {
		return nil, ErrNoSharedSecret
	}
	if len(ciphertext) < box.Overhead {
		return nil, ErrDecryptionFailed
	}
	pt, ok := box.OpenAfterPrecomputation(nil, ciphertext, (*[NonceSize]byte)(&nonce), (*[32]byte)(secret))
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return pt, nil
}

// Decrypt opens ciphertext under secret and decodes the JSON into out.
func Decrypt(ciphertext []byte, nonce domain.Nonce, secret *domain.SharedSecret, out any) error {
	pt, err := DecryptRaw(ciphertext, nonce, secret)
	if err != nil {
		return err
	}
	defer Wipe(pt)
	if err := json.Unmarshal(pt, out); err != nil {
		return domain.WrapError(domain.KindDecryptionFailed, "decode decrypted payload", err)
	}
	return nil
}
