// Package store provides file-based persistence for walletlink's
// page-independent state.
//
// Everything the session machine needs after a round trip to the wallet is
// written here before navigating away. Files live under the configured home
// directory and are replaced atomically (temp file + rename). All stores are
// concurrency-safe via internal locking.
//
// The package includes stores for:
//   - The pending correlation record (PendingFileStore)
//   - The connected session (SessionFileStore)
//   - The CLI address bar (LocationFileStore)
//
// Pending and session files hold key material and are sealed with
// scrypt + ChaCha20-Poly1305 when a passphrase is configured. Transaction
// history lives in the sqlite subpackage.
package store
