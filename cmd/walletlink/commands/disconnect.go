package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// disconnect: drop the session locally and tell the wallet.
func disconnectCmd(c *cli) *cobra.Command {
	var qr, sim bool
	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "End the session; the local session is discarded immediately",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, qr))
			if err != nil {
				return err
			}
			defer w.Close()

			link, err := w.Session.Disconnect(cmd.Context())
			if err != nil && link.Empty() {
				return err
			}
			fmt.Fprintln(out, "Disconnected.")
			if sim {
				return completeWithSim(cmd.Context(), out, w, link)
			}
			return nil
		},
	}
	addLinkFlags(cmd, &qr, &sim)
	return cmd
}
