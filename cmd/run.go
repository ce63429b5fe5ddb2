package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"tradescope/core"
	"tradescope/internal/contract"
	"tradescope/internal/outwriter"
)

// runCmd executes the full pipeline and records the run.
var runCmd = &cobra.Command{
	Use:   "run [data-file]",
	Short: "Run the full pipeline: prepare, decompose, forecast, and alert.",
	Long: `Run every pipeline stage over the configured dataset in one pass.

The stages execute in order:
- Prepare: aggregate records into a contiguous monthly series, filling gaps
- Decompose: split the series into trend, seasonal, and residual components
- Forecast: project the trend forward with seasonal indices and bounds
- Evaluate: flag months whose residuals or forecast deviations stand out

Each run is recorded in the run store (see 'tradescope store') together with
the alerts it raised, so results can be tracked over time.

Examples:
  # Full pipeline over a local dataset
  tradescope run trade.csv

  # Restrict to one partner and use a multiplicative model
  tradescope run trade.csv --partners Brazil --model multiplicative

  # Forecast two years ahead at 99% confidence
  tradescope run trade.csv --horizon 24 --confidence 0.99

  # Export the alerts to CSV for tracking
  tradescope run trade.csv --output csv --output-file alerts.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()

		raw, err := loadSeries(rootCtx, cfg)
		if err != nil {
			contract.LogFatal("Cannot load dataset", err)
		}

		runID, err := runStore.BeginRun(start, cfg.Period, cfg.Horizon, cfg.Confidence, cfg.Model, runConfigParams(cfg))
		if err != nil {
			contract.LogWarn("Cannot record run start", err)
		}

		result, err := core.Run(raw, cfg.Period, cfg.Horizon, cfg.Confidence, cfg.Sensitivity, cfg.Model)
		if err != nil {
			contract.LogFatal("Cannot run pipeline", err)
		}

		if runID > 0 {
			if err := runStore.RecordAlerts(runID, result.Alerts); err != nil {
				contract.LogWarn("Cannot record alerts", err)
			}
			if err := runStore.EndRun(runID, time.Now(), result.Decomposition.Series.Len(), len(result.Alerts)); err != nil {
				contract.LogWarn("Cannot record run end", err)
			}
		}

		writer := outwriter.NewOutWriter()
		if err := writer.WritePipeline(result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write pipeline results", err)
		}
	},
}
