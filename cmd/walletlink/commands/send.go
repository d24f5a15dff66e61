package commands

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"walletlink/internal/domain"
)

// send <recipient> <amount>: ask the wallet to sign a transfer of <amount> SOL.
func sendCmd(c *cli) *cobra.Command {
	var (
		qr, sim  bool
		lamports bool
	)
	cmd := &cobra.Command{
		Use:   "send <recipient> <amount>",
		Short: "Ask the wallet to sign a SOL transfer to <recipient>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("recipient: %w", err)
			}
			amount, err := parseAmount(args[1], lamports)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, qr))
			if err != nil {
				return err
			}
			defer w.Close()

			link, err := w.Session.SendTransaction(cmd.Context(), domain.TransactionRequest{
				Recipient: recipient,
				Lamports:  amount,
			})
			if err != nil {
				return err
			}
			if sim {
				return completeWithSim(cmd.Context(), out, w, link)
			}
			return nil
		},
	}
	addLinkFlags(cmd, &qr, &sim)
	cmd.Flags().BoolVar(&lamports, "lamports", false, "amount is in lamports rather than SOL")
	return cmd
}

func parseAmount(s string, lamports bool) (uint64, error) {
	if lamports {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("amount: %w", err)
		}
		return n, nil
	}
	n, err := domain.LamportsFromSOL(s)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.NewError(domain.KindPrecondition, "amount must be a positive number of SOL")
	}
	return n, nil
}
