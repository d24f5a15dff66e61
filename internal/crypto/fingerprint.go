package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"walletlink/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a public key for logs.
//
// It hashes with SHA-256 and truncates to 6 bytes (12 hex chars).
func Fingerprint(pub domain.X25519Public) string {
	sum := sha256.Sum256(pub[:])
	return hex.EncodeToString(sum[:6])
}
