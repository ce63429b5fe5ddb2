package outwriter

import (
	"fmt"
	"io"
	"time"

	"tradescope/internal/contract"
	"tradescope/internal/parquet"
	"tradescope/schema"
)

// PrintPipelineResult outputs a full pipeline run. Text output prints a short
// summary, the forecast table, and the alerts table in sequence; structured
// formats carry the whole result (JSON) or the alert rows (CSV, Parquet).
func PrintPipelineResult(res *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONPipeline(res, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		fmtFloat, _ := createFormatters(cfg.Precision)
		if err := printCSVAlerts(res.Alerts, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteAlertRowsParquet(parquet.ConvertAlerts(0, res.Alerts), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printPipelineText(res, cfg, duration); err != nil {
			return fmt.Errorf("error writing pipeline output: %w", err)
		}
	}
	return nil
}

func printJSONPipeline(res *schema.PipelineResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, res)
	}, "Wrote JSON pipeline result")
}

func printPipelineText(res *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	d := res.Decomposition
	headerLine(cfg, "📈", fmt.Sprintf("Analyzed %d month(s) from %s to %s (%s, period %d)",
		d.Series.Len(),
		d.Series.Start().Format(monthFormat),
		d.Series.End().Format(monthFormat),
		d.Model,
		d.Series.Period))

	fmtFloat, _ := createFormatters(cfg.Precision)
	if err := printForecastTable(res.Forecast, cfg, fmtFloat, duration); err != nil {
		return err
	}
	fmt.Println()
	return printAlertsTable(res.Alerts, cfg, fmtFloat, duration)
}
