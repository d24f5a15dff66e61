package crypto

import (
	"github.com/mr-tron/base58"

	"walletlink/internal/domain"
)

// EncodeBase58 encodes b with the Bitcoin alphabet used by Solana wallets.
func EncodeBase58(b []byte) string { return base58.Encode(b) }

// DecodeBase58 decodes a Base58 string. Empty input is rejected.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrBadEncoding
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, domain.WrapError(domain.KindMalformed, ErrBadEncoding.Message, err)
	}
	return b, nil
}

// DecodeKey32 decodes a Base58 X25519 public key.
func DecodeKey32(s string) (domain.X25519Public, error) {
	var out domain.X25519Public
	b, err := DecodeBase58(s)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, ErrBadEncoding
	}
	copy(out[:], b)
	return out, nil
}

// DecodeNonce decodes a Base58 box nonce.
func DecodeNonce(s string) (domain.Nonce, error) {
	var out domain.Nonce
	b, err := DecodeBase58(s)
	if err != nil {
		return out, err
	}
	if len(b) != NonceSize {
		return out, ErrBadEncoding
	}
	copy(out[:], b)
	return out, nil
}
