package interfaces

import (
	"context"

	domaintypes "walletlink/internal/domain/types"
)

// PendingStore persists the single outstanding correlation record so it
// survives the navigation to the wallet and back.
type PendingStore interface {
	SavePending(req domaintypes.PendingRequest) error
	LoadPending() (domaintypes.PendingRequest, bool, error)
	ClearPending() error
}

// SessionStore persists the connected session across page loads.
type SessionStore interface {
	SaveSession(session domaintypes.Session) error
	LoadSession() (domaintypes.Session, bool, error)
	DeleteSession() error
}

// TransactionSink receives transaction records as flows complete.
type TransactionSink interface {
	AppendTransaction(ctx context.Context, record domaintypes.TransactionRecord) error
}

// HistoryStore is the append-only transaction history.
type HistoryStore interface {
	TransactionSink
	ListTransactions(ctx context.Context, limit int) ([]domaintypes.TransactionRecord, error)
}
