package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"walletlink/internal/app"
	"walletlink/internal/domain"
	"walletlink/internal/services/watcher"
	"walletlink/internal/walletsim"
)

func printLink(out io.Writer, link domain.Link, qr bool) error {
	if qr {
		code, err := qrcode.New(link.URL, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("generate QR code: %w", err)
		}
		fmt.Fprintln(out, code.ToSmallString(false))
	}
	fmt.Fprintf(out, "Open in your wallet (%s):\n%s\n", link.Action, link.URL)
	return nil
}

func printTransition(out io.Writer, t domain.Transition) {
	if t.Err != nil {
		fmt.Fprintf(out, "%s failed: %s\n", t.Action, domain.UserMessage(t.Action, t.Err))
	}
	switch {
	case t.Wallet != nil && t.To == domain.StateConnected:
		fmt.Fprintf(out, "Connected to %s\n", t.Wallet.Account)
	case t.Record != nil && t.Record.Success:
		fmt.Fprintf(out, "Transaction signed: %s (%.9g SOL)\n", t.Record.Signature, t.Record.SOL())
	}
	fmt.Fprintf(out, "State: %s\n", t.To)
}

// printResult reports one watcher check. Stale responses are returned as
// errors so the process exits non-zero.
func printResult(out io.Writer, res watcher.Result) error {
	switch {
	case res.Duplicate:
		fmt.Fprintln(out, "Response already processed; ignored.")
	case !res.Handled:
		fmt.Fprintln(out, "No wallet response in URL.")
	case res.Err != nil:
		return res.Err
	default:
		printTransition(out, res.Transition)
	}
	return nil
}

func printJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// addLinkFlags registers the flags shared by the commands that issue links.
func addLinkFlags(cmd *cobra.Command, qr, sim *bool) {
	cmd.Flags().BoolVar(qr, "qr", false, "also print the link as a QR code")
	cmd.Flags().BoolVar(sim, "sim", false, "complete the round trip against a wallet simulator at the universal base")
}

// completeWithSim plays the phone: it opens link against the simulator and
// loads the redirect back into the address bar, as the wallet would.
func completeWithSim(ctx context.Context, out io.Writer, w *app.Wire, link domain.Link) error {
	back, err := walletsim.NewClient(nil).Open(ctx, link.URL)
	if err != nil {
		return err
	}
	if err := w.Location.Navigate(back); err != nil {
		return err
	}
	res, err := w.Watcher.Check(ctx)
	if err != nil {
		return err
	}
	return printResult(out, res)
}
