package crypto

import (
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"walletlink/internal/domain"
)

// GenerateKeypair returns a fresh ephemeral X25519 key pair. Callers must not
// reuse it across connection attempts.
func GenerateKeypair() (domain.Keypair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return domain.Keypair{}, errors.Wrap(err, "generate x25519 keypair")
	}
	kp := domain.Keypair{Public: *pub, Private: *priv}
	Wipe(priv[:])
	return kp, nil
}

// PublicFromPrivate recomputes the public half of priv.
func PublicFromPrivate(priv domain.X25519Private) (domain.X25519Public, error) {
	var pub domain.X25519Public
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return pub, errors.Wrap(err, "derive x25519 public key")
	}
	copy(pub[:], pb)
	return pub, nil
}

// DeriveSharedSecret computes the box shared key for (own, peer). The result
// is deterministic and symmetric: either side derives the same secret from its
// own private key and the other's public key.
func DeriveSharedSecret(own domain.X25519Private, peer domain.X25519Public) (domain.SharedSecret, error) {
	var out domain.SharedSecret

	// X25519 rejects low-order peer points, which box.Precompute would accept.
	dh, err := curve25519.X25519(own.Slice(), peer.Slice())
	if err != nil {
		return out, domain.WrapError(domain.KindDecryptionFailed, ErrInvalidPeerKey.Message, err)
	}
	Wipe(dh)

	box.Precompute((*[32]byte)(&out), (*[32]byte)(&peer), (*[32]byte)(&own))
	return out, nil
}
