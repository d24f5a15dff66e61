package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// history: print recorded transactions, newest first, and their summary.
func historyCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the transaction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			w, err := c.open(cmd.Context(), printNavigator(out, false))
			if err != nil {
				return err
			}
			defer w.Close()

			recs, err := w.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			sum, err := w.History.Summary(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSOL\tRESULT\tDETAIL")
			for _, r := range recs {
				result, detail := "ok", r.Signature
				if !r.Success {
					result, detail = "failed", r.Reason
				}
				fmt.Fprintf(tw, "%s\t%.9g\t%s\t%s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.SOL(), result, detail)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d transactions, %.0f%% succeeded, %.9g SOL sent, average %s\n",
				sum.Total, sum.SuccessRate*100, sum.TotalSOL, sum.AvgDuration)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows (0 for all)")
	return cmd
}
