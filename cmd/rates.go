package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/outbound-cli/internal/rates"
	"github.com/sells-group/outbound-cli/internal/report"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the conversion rate assumptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := rates.Assumptions()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.WriteJSON(cmd.OutOrStdout(), list)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-28s %-26s %8s %16s  %s\n", "Flag", "Rate", "Default", "Range", "Source")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for _, a := range list {
			fmt.Fprintf(w, "--%-26s %-26s %8s %16s  %s\n",
				rateFlag(a.ID), a.Name, report.Percent(a.Rate),
				report.Percent(a.Min)+"-"+report.Percent(a.Max), a.Source)
		}
		return nil
	},
}

func init() {
	ratesCmd.Flags().Bool("json", false, "print JSON")
	rootCmd.AddCommand(ratesCmd)
}
