package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// status: print the state machine snapshot.
func statusCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the connection state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, false))
			if err != nil {
				return err
			}
			defer w.Close()

			snap := w.Session.Snapshot()
			if asJSON {
				return printJSON(out, snap)
			}
			fmt.Fprintf(out, "State:   %s\n", snap.State)
			fmt.Fprintf(out, "Cluster: %s\n", snap.Cluster)
			if snap.Wallet != nil {
				fmt.Fprintf(out, "Wallet:  %s (since %s)\n", snap.Wallet.Account, snap.ConnectedAt.Local().Format("2006-01-02 15:04:05"))
			}
			if p := snap.Pending; p != nil {
				fmt.Fprintf(out, "Pending: %s %s (expires %s)\n", p.Action, p.ID, p.Deadline.Local().Format("15:04:05"))
			}
			if snap.LastError != "" {
				fmt.Fprintf(out, "Last error: %s\n", snap.LastError)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
