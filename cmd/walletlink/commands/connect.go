package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// connect: start a connection and print the deep link.
func connectCmd(c *cli) *cobra.Command {
	var qr, sim bool
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Print the deep link that connects your wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, qr))
			if err != nil {
				return err
			}
			defer w.Close()

			link, err := w.Session.Connect(cmd.Context())
			if err != nil {
				return err
			}
			if sim {
				return completeWithSim(cmd.Context(), out, w, link)
			}
			fmt.Fprintln(out, "Waiting for the wallet. Run \"walletlink receive <url>\" with the address it returns to.")
			return nil
		},
	}
	addLinkFlags(cmd, &qr, &sim)
	return cmd
}
