package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// browse [target]: print a link that opens target in the wallet's browser.
func browseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [target]",
		Short: "Print a link opening a page inside the wallet browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, false))
			if err != nil {
				return err
			}
			defer w.Close()

			target := w.Builder.AppURL()
			if len(args) == 1 {
				target = args[0]
			}
			link, err := w.Builder.BrowseURL(target)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, link)
			return nil
		},
	}
}
