package session

import (
	"context"
	"crypto/rand"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/pkg/errors"

	"walletlink/internal/domain"
)

// BlockhashSource supplies the recent blockhash stamped on outgoing
// transactions.
type BlockhashSource func(ctx context.Context) (solana.Hash, error)

// RandomBlockhash returns a random hash. Transactions are never broadcast, so
// any 32 bytes will do.
func RandomBlockhash(context.Context) (solana.Hash, error) {
	var h solana.Hash
	if _, err := rand.Read(h[:]); err != nil {
		return h, errors.Wrap(err, "read blockhash")
	}
	return h, nil
}

// BuildTransfer serialises an unsigned SOL transfer from payer to
// req.Recipient with payer as fee payer.
func BuildTransfer(payer solana.PublicKey, req domain.TransactionRequest, blockhash solana.Hash) ([]byte, error) {
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(req.Lamports, payer, req.Recipient).Build(),
		},
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build transfer")
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "encode transfer")
	}
	return raw, nil
}

func validateRequest(req domain.TransactionRequest) error {
	if req.Lamports == 0 {
		return domain.NewError(domain.KindPrecondition, "amount must be positive")
	}
	if req.Recipient.IsZero() {
		return domain.NewError(domain.KindPrecondition, "recipient is required")
	}
	return nil
}
