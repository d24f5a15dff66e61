package types

import "time"

// PendingRequest is the correlation record written before navigating away to
// the wallet. Keypair is set for connect attempts only; Transaction for
// signAndSendTransaction only.
type PendingRequest struct {
	ID          CorrelationID       `json:"id"`
	Action      Action              `json:"action"`
	StartedAt   time.Time           `json:"started_at"`
	Keypair     *Keypair            `json:"keypair,omitempty"`
	Transaction *TransactionRequest `json:"transaction,omitempty"`
}

// Age returns how long the request has been outstanding at now.
func (p PendingRequest) Age(now time.Time) time.Duration {
	return now.Sub(p.StartedAt)
}

// Expired reports whether the request is older than ttl at now.
func (p PendingRequest) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && p.Age(now) > ttl
}
