package store

import (
	"crypto/rand"
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"walletlink/internal/crypto"
)

// envelopeVersion is the current on-disk format of sealed files.
const envelopeVersion = 1

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or a
	// sealed file has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted state file")

	// ErrLocked is returned when a sealed file is read without a passphrase.
	ErrLocked = errors.New("state file is sealed; a passphrase is required")
)

// envelope is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// codec turns values into file contents: plain JSON, or JSON sealed under a
// passphrase-derived key when a passphrase is configured.
type codec struct {
	passphrase string
	n, r, p    int
}

func newCodec(passphrase string) codec {
	n, r, p := scryptParamsDefault()
	return codec{passphrase: passphrase, n: n, r: r, p: p}
}

func (c codec) marshal(v any) ([]byte, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode state")
	}
	if c.passphrase == "" {
		return raw, nil
	}
	defer crypto.Wipe(raw)
	return c.seal(raw)
}

func (c codec) unmarshal(b []byte, out any) error {
	if env, ok := asEnvelope(b); ok {
		if c.passphrase == "" {
			return ErrLocked
		}
		raw, err := c.open(env)
		if err != nil {
			return err
		}
		defer crypto.Wipe(raw)
		b = raw
	}
	return errors.Wrap(json.Unmarshal(b, out), "decode state")
}

// seal derives a key from the passphrase and seals raw into an envelope.
func (c codec) seal(raw []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, errors.Wrap(err, "read salt")
	}
	key, err := scrypt.Key([]byte(c.passphrase), salt[:], c.n, c.r, c.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	defer crypto.Wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the salt-bound key is never reused
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(envelope{
		V:      envelopeVersion,
		Salt:   salt[:],
		N:      c.n,
		R:      c.r,
		P:      c.p,
		Cipher: ct,
	})
}

// open decrypts env using a key derived from the passphrase.
func (c codec) open(env envelope) ([]byte, error) {
	if env.V > envelopeVersion {
		return nil, errors.Errorf("unsupported state file version %d", env.V)
	}
	key, err := scrypt.Key([]byte(c.passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	defer crypto.Wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func asEnvelope(b []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return envelope{}, false
	}
	return env, env.V > 0 && len(env.Cipher) > 0 && len(env.Salt) > 0
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
