package iostore

import (
	"fmt"
	"strings"

	"tradescope/internal/contract"
	"tradescope/internal/parquet"
)

// ExecuteRunExport writes all stored runs and their alerts to Parquet files.
// Runs go to outputFile; alerts go to a sibling file with an ".alerts.parquet"
// suffix derived from it.
func ExecuteRunExport(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("export requires --output-file")
	}

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to read runs: %w", err)
	}
	if len(runs) == 0 {
		return fmt.Errorf("no runs to export")
	}

	if err := parquet.WritePipelineRunsParquet(parquet.ConvertRunRecords(runs), outputFile); err != nil {
		return fmt.Errorf("failed to write runs parquet: %w", err)
	}

	var alertRows []parquet.AlertRow
	for _, run := range runs {
		alerts, err := store.GetAlerts(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to read alerts for run %d: %w", run.RunID, err)
		}
		alertRows = append(alertRows, parquet.ConvertStoredAlerts(alerts)...)
	}

	alertsFile := alertsExportPath(outputFile)
	if err := parquet.WriteAlertRowsParquet(alertRows, alertsFile); err != nil {
		return fmt.Errorf("failed to write alerts parquet: %w", err)
	}

	fmt.Printf("Exported %d run(s) to %s and %d alert(s) to %s\n",
		len(runs), outputFile, len(alertRows), alertsFile)
	return nil
}

// alertsExportPath derives the alerts file name from the runs file name.
func alertsExportPath(outputFile string) string {
	if strings.HasSuffix(outputFile, ".parquet") {
		return strings.TrimSuffix(outputFile, ".parquet") + ".alerts.parquet"
	}
	return outputFile + ".alerts.parquet"
}
