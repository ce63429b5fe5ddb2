package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"tradescope/core"
	"tradescope/internal/contract"
	"tradescope/internal/outwriter"
)

// alertsCmd evaluates anomaly rules over the series.
var alertsCmd = &cobra.Command{
	Use:   "alerts [data-file]",
	Short: "Flag the months whose values break the seasonal pattern.",
	Long: `Evaluate the anomaly rules over the decomposed series and report alerts.

Two rules run:
- Residual outliers: months whose residual z-score crosses the warning or
  critical threshold
- Forecast deviations: observed months that fall outside a prior forecast's
  confidence bounds

Alerts come back ordered by month, then severity. Tune the thresholds with
--warning-z and --critical-z.

Examples:
  # Default two/three sigma thresholds
  tradescope alerts trade.csv

  # More sensitive detection
  tradescope alerts trade.csv --warning-z 1.5 --critical-z 2.5

  # Feed a dashboard
  tradescope alerts trade.csv --output json --output-file alerts.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()

		raw, err := loadSeries(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot load dataset", err)
		}
		result, err := core.Run(raw, cfg.Period, cfg.Horizon, cfg.Confidence, cfg.Sensitivity, cfg.Model)
		if err != nil {
			contract.LogFatal("Cannot run pipeline", err)
		}

		writer := outwriter.NewOutWriter()
		if err := writer.WriteAlerts(result.Alerts, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write alert results", err)
		}
	},
}
