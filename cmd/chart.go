package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tradescope/core"
	"tradescope/internal/charts"
	"tradescope/internal/contract"
)

// chartCmd renders interactive HTML charts.
var chartCmd = &cobra.Command{
	Use:   "chart [data-file]",
	Short: "Render an interactive HTML chart of the analysis.",
	Long: `Render the analysis as an interactive HTML page.

Two charts are available via --chart:
- decomposition: one panel per component (observed, trend, seasonal, residual)
- forecast: the observed series with the projection and its confidence band

Requires: --output-file parameter for the HTML destination.

Examples:
  # Component panels
  tradescope chart trade.csv --output-file components.html

  # Forecast overlay with bounds
  tradescope chart trade.csv --chart forecast --output-file forecast.html`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot render chart", fmt.Errorf("chart output requires --output-file"))
		}

		decomp, err := loadDecomposition(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot decompose series", err)
		}

		switch kind := viper.GetString("chart"); kind {
		case "forecast":
			forecast, err := core.Project(decomp, cfg.Horizon, cfg.Confidence)
			if err != nil {
				contract.LogFatal("Cannot project series", err)
			}
			if err := charts.WriteForecastChart(decomp.Series, forecast, cfg.OutputFile); err != nil {
				contract.LogFatal("Cannot write forecast chart", err)
			}
		case "decomposition":
			if err := charts.WriteDecompositionChart(decomp, cfg.OutputFile); err != nil {
				contract.LogFatal("Cannot write decomposition chart", err)
			}
		default:
			contract.LogFatal("Cannot render chart", fmt.Errorf("unknown chart kind: %s", kind))
		}

		fmt.Printf("Wrote chart to %s\n", cfg.OutputFile)
	},
}
