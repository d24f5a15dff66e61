// Package crypto is the key-exchange codec of the wallet deep-link protocol.
//
// Contents
//
//   - Ephemeral X25519 key generation (GenerateKeypair, PublicFromPrivate)
//   - Shared-secret derivation via box precomputation (DeriveSharedSecret)
//   - Authenticated encryption of JSON payloads with XSalsa20-Poly1305 under a
//     fresh random 24-byte nonce per call (Encrypt, Decrypt, DecryptRaw)
//   - Base58, the only binary encoding allowed at the URL boundary
//     (EncodeBase58, DecodeBase58, DecodeKey32, DecodeNonce)
//   - Best-effort memory wiping for secrets (Wipe, WipeKeypair, WipeSecret)
//   - Short public-key fingerprints for logs (Fingerprint)
//
// # Notes
//
// Every encrypt/decrypt first checks that a shared secret is present and
// returns ErrNoSharedSecret otherwise. Authentication failures surface as
// ErrDecryptionFailed; nothing in this package panics on bad input.
package crypto
