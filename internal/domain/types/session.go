package types

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// State is the lifecycle position of a wallet connection.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"

	// StateAwaitingSignature is a sub-state of StateConnected: the session is
	// live and a transaction request is out with the wallet.
	StateAwaitingSignature State = "awaiting_signature"
)

// String returns the string form of the state.
func (s State) String() string { return string(s) }

// Connected reports whether a session is live in s.
func (s State) Connected() bool {
	return s == StateConnected || s == StateAwaitingSignature
}

// WalletIdentity is the peer learned from a successful connect.
type WalletIdentity struct {
	Account       solana.PublicKey `json:"account"`
	EncryptionKey X25519Public     `json:"encryption_key"`
}

// Session is the connected state persisted across page loads.
type Session struct {
	Method       ConnectionMethod `json:"method"`
	Token        SessionToken     `json:"token"`
	Wallet       WalletIdentity   `json:"wallet"`
	Keypair      Keypair          `json:"keypair"`
	Shared       SharedSecret     `json:"shared"`
	Cluster      Cluster          `json:"cluster"`
	ConnectedUTC int64            `json:"connected_utc"`
}

// Authenticated reports whether the session can issue encrypted requests.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && !s.Shared.IsZero()
}

// Transition describes one state change of the session machine. Err carries
// the typed failure when the transition was forced by one.
type Transition struct {
	From          State              `json:"from"`
	To            State              `json:"to"`
	Action        Action             `json:"action"`
	CorrelationID CorrelationID      `json:"correlation_id,omitempty"`
	Wallet        *WalletIdentity    `json:"wallet,omitempty"`
	Record        *TransactionRecord `json:"record,omitempty"`
	Err           error              `json:"-"`
	At            time.Time          `json:"at"`
}

// Changed reports whether the top-level state moved.
func (t Transition) Changed() bool { return t.From != t.To }
