package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
)

// TransactionRequest is a simulated SOL transfer from the connected wallet.
type TransactionRequest struct {
	Recipient solana.PublicKey `json:"recipient"`
	Lamports  uint64           `json:"lamports"`
}

// TransactionRecord is one entry of the append-only transaction history.
type TransactionRecord struct {
	ID        string           `json:"id"`
	Lamports  uint64           `json:"lamports"`
	Recipient string           `json:"recipient,omitempty"`
	Success   bool             `json:"success"`
	Timestamp time.Time        `json:"timestamp"`
	Method    ConnectionMethod `json:"method"`
	Duration  time.Duration    `json:"duration,omitempty"`
	Signature string           `json:"signature,omitempty"`
	Reason    string           `json:"reason,omitempty"`
}

// SOL returns the amount in whole SOL.
func (r TransactionRecord) SOL() float64 {
	return float64(r.Lamports) / float64(solana.LAMPORTS_PER_SOL)
}

// solDecimals is the number of lamport digits after the SOL decimal point.
const solDecimals = 9

// LamportsFromSOL converts a decimal SOL amount such as "1.5" to lamports
// without going through floating point. Signs, exponents and more than nine
// fractional digits are rejected, as are amounts that do not fit in a uint64.
func LamportsFromSOL(s string) (uint64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" && frac == "" {
		return 0, NewError(KindPrecondition, "amount is empty")
	}
	if len(frac) > solDecimals {
		return 0, NewError(KindPrecondition, "amount has more than 9 decimal places")
	}

	var w, f uint64
	var err error
	if whole != "" {
		if w, err = strconv.ParseUint(whole, 10, 64); err != nil {
			return 0, WrapError(KindPrecondition, "invalid SOL amount "+strconv.Quote(s), err)
		}
	}
	if frac != "" {
		if f, err = strconv.ParseUint(frac+strings.Repeat("0", solDecimals-len(frac)), 10, 64); err != nil {
			return 0, WrapError(KindPrecondition, "invalid SOL amount "+strconv.Quote(s), err)
		}
	}
	if w > (math.MaxUint64-f)/solana.LAMPORTS_PER_SOL {
		return 0, NewError(KindPrecondition, "amount "+strconv.Quote(s)+" overflows lamports")
	}
	return w*solana.LAMPORTS_PER_SOL + f, nil
}
