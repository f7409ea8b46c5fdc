package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print headline survey statistics",
	Long:  `Checks the response store connection and prints the dashboard headline figures.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	count, err := a.ResponseService.Count(cmd.Context())
	if err != nil {
		return err
	}
	sum, err := a.ReportService.Dashboard(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store:                   %s (ok)\n", cfg.StoreDriver)
	fmt.Fprintf(out, "Responses:               %d\n", count)
	fmt.Fprintf(out, "Funding need:            %d\n", sum.FundingNeedCount)
	fmt.Fprintf(out, "Government respondents:  %d\n", sum.GovernmentRespondents)
	fmt.Fprintf(out, "Unique clusters:         %d\n", sum.UniqueClusters)
	for _, c := range sum.Clusters {
		fmt.Fprintf(out, "  %-22s %d\n", c.Tag, c.Count)
	}
	return nil
}
