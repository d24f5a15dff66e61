package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"walletlink/internal/domain"
)

// receive <url>: load the address the wallet redirected back to.
func receiveCmd(c *cli) *cobra.Command {
	var noCheck bool
	cmd := &cobra.Command{
		Use:   "receive <url>",
		Short: "Load the URL the wallet redirected back to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil || !u.IsAbs() {
				return fmt.Errorf("url must be absolute")
			}
			nav := printNavigator(cmd.OutOrStdout(), false)
			w, err := c.open(cmd.Context(), nav)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Location.Navigate(u); err != nil {
				return err
			}
			if noCheck {
				fmt.Fprintln(cmd.OutOrStdout(), "Address loaded; a running \"walletlink watch\" will pick it up.")
				return nil
			}
			res, err := w.Watcher.Check(cmd.Context())
			if err != nil {
				return err
			}
			if res.Err != nil {
				return fmt.Errorf("%s", domain.UserMessage(res.Transition.Action, res.Err))
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "only load the address; leave processing to a running watch")
	return cmd
}
