package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"tradescope/internal/contract"
	"tradescope/internal/parquet"
	"tradescope/schema"
)

// PrintAlerts outputs alerts, dispatching based on the output format configured.
func PrintAlerts(alerts []schema.Alert, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONAlerts(alerts, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVAlerts(alerts, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteAlertRowsParquet(parquet.ConvertAlerts(0, alerts), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printAlertsTable(alerts, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing alerts table output: %w", err)
		}
	}
	return nil
}

// printJSONAlerts handles opening the file and calling the JSON writer.
func printJSONAlerts(alerts []schema.Alert, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, alerts)
	}, "Wrote JSON alerts")
}

// printCSVAlerts handles opening the file and calling the CSV writer.
func printCSVAlerts(alerts []schema.Alert, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"month", "severity", "kind", "observed", "expected", "score"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, a := range alerts {
				row := []string{
					a.Time.Format(monthFormat),
					string(a.Severity),
					string(a.Kind),
					fmtFloat(a.Observed),
					fmtFloat(a.Expected),
					fmt.Sprintf("%.2f", a.Score),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV alerts")
}

// printAlertsTable prints the alerts in a six-column table, capped at the
// configured result limit.
func printAlertsTable(alerts []schema.Alert, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(alerts) == 0 {
		headerLine(cfg, "✅", "No alerts found")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Month", "Severity", "Kind", "Observed", "Expected", "Score"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	shown := min(len(alerts), cfg.ResultLimit)
	var data [][]string
	for _, a := range alerts[:shown] {
		row := []string{
			a.Time.Format(monthFormat),
			severityCell(cfg, a.Severity),
			string(a.Kind),
			fmtFloat(a.Observed),
			fmtFloat(a.Expected),
			fmt.Sprintf("%.2f", a.Score),
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if remaining := len(alerts) - shown; remaining > 0 {
		fmt.Printf("... and %d more\n", remaining)
	}
	fmt.Printf("Found %d alert(s) in %v\n", len(alerts), duration)
	return nil
}
