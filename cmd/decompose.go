package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"tradescope/internal/contract"
	"tradescope/internal/outwriter"
)

// decomposeCmd splits the series into components.
var decomposeCmd = &cobra.Command{
	Use:   "decompose [data-file]",
	Short: "Split the monthly series into trend, seasonal, and residual parts.",
	Long: `Decompose the configured series using classical seasonal decomposition.

The trend comes from a centered moving average over one full cycle, the
seasonal component from normalized per-position averages, and the residual is
whatever the first two leave unexplained. With --model multiplicative the
components combine by product instead of sum, which suits series whose
seasonal swings scale with the trend.

Examples:
  # Decompose with the default additive model
  tradescope decompose trade.csv

  # Multiplicative decomposition of a single partner
  tradescope decompose trade.csv --partners Argentina --model multiplicative

  # Export the components for downstream analysis
  tradescope decompose trade.csv --output parquet --output-file components.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()

		decomp, err := loadDecomposition(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot decompose series", err)
		}

		writer := outwriter.NewOutWriter()
		if err := writer.WriteDecomposition(decomp, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write decomposition results", err)
		}
	},
}
