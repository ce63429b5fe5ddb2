package cmd

import (
	"github.com/spf13/cobra"

	"tradescope/internal/contract"
	"tradescope/internal/loader"
	"tradescope/internal/outwriter"
)

// summaryCmd describes the dataset without running the pipeline.
var summaryCmd = &cobra.Command{
	Use:   "summary [data-file]",
	Short: "Summarize the dataset: coverage, totals, and top partners.",
	Long: `Describe the filtered dataset before any analysis runs.

Reports the record count, the covered month range, total tonnage, and the
partners ranked by volume with their share of the total. Use this to sanity
check a dataset and its filters before running the pipeline.

Examples:
  # Overview of the whole dataset
  tradescope summary trade.csv

  # Top partners for a single year
  tradescope summary trade.csv --years 2023 --limit 5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := loadRecords(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot load dataset", err)
		}

		summary := loader.Summarize(records)
		totals := loader.PartnerTotals(records, cfg.ResultLimit)

		writer := outwriter.NewOutWriter()
		if err := writer.WriteSummary(summary, totals, cfg); err != nil {
			contract.LogFatal("Cannot write dataset summary", err)
		}
	},
}
