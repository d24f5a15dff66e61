package crypto

import (
	"runtime"

	"walletlink/internal/domain"
)

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WipeKeypair zeroes both halves of kp.
func WipeKeypair(kp *domain.Keypair) {
	if kp == nil {
		return
	}
	Wipe(kp.Private[:])
	Wipe(kp.Public[:])
}

// WipeSecret zeroes s.
func WipeSecret(s *domain.SharedSecret) {
	if s == nil {
		return
	}
	Wipe(s[:])
}
