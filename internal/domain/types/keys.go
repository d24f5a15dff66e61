package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p X25519Public) IsZero() bool { return p == X25519Public{} }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// Keypair is an ephemeral X25519 key pair generated per connection attempt.
type Keypair struct {
	Public  X25519Public  `json:"public"`
	Private X25519Private `json:"private"`
}

// SharedSecret is the precomputed box key shared with the wallet.
type SharedSecret [32]byte

// IsZero reports whether the secret is unset.
func (s *SharedSecret) IsZero() bool { return s == nil || *s == SharedSecret{} }

// Nonce is the 24-byte box nonce carried next to every ciphertext.
type Nonce [24]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }
