package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"tradescope/core"
	"tradescope/internal/contract"
	"tradescope/internal/outwriter"
)

// forecastCmd projects the series forward.
var forecastCmd = &cobra.Command{
	Use:   "forecast [data-file]",
	Short: "Project the series forward with confidence bounds.",
	Long: `Forecast future months by extending the decomposed trend and re-applying
the seasonal pattern.

The trend extends by linear regression over its core region, each projected
month picks up the seasonal index for its cycle position, and the bounds
widen with the forecast distance using the residual spread of the fit.

Examples:
  # Twelve months ahead at the default 95% confidence
  tradescope forecast trade.csv

  # A short horizon with tight bounds
  tradescope forecast trade.csv --horizon 3 --confidence 0.8

  # Machine-readable output
  tradescope forecast trade.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()

		decomp, err := loadDecomposition(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot decompose series", err)
		}
		forecast, err := core.Project(decomp, cfg.Horizon, cfg.Confidence)
		if err != nil {
			contract.LogFatal("Cannot project series", err)
		}

		writer := outwriter.NewOutWriter()
		if err := writer.WriteForecast(forecast, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write forecast results", err)
		}
	},
}
