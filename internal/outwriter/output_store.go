package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"tradescope/internal/contract"
	"tradescope/internal/parquet"
	"tradescope/schema"
)

// PrintRuns outputs persisted pipeline runs, dispatching based on the output
// format configured.
func PrintRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONRuns(runs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVRuns(runs, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WritePipelineRunsParquet(parquet.ConvertRunRecords(runs), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printRunsTable(runs, cfg); err != nil {
			return fmt.Errorf("error writing runs table output: %w", err)
		}
	}
	return nil
}

func printJSONRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, runs)
	}, "Wrote JSON runs")
}

func printCSVRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"run_id", "start_time", "duration_ms", "period", "horizon", "confidence", "model", "points", "alerts"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range runs {
				row := []string{
					fmt.Sprintf("%d", r.RunID),
					r.StartTime.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%d", r.RunDurationMs),
					fmt.Sprintf("%d", r.Period),
					fmt.Sprintf("%d", r.Horizon),
					fmt.Sprintf("%.2f", r.Confidence),
					r.Model,
					fmt.Sprintf("%d", r.SeriesPoints),
					fmt.Sprintf("%d", r.AlertCount),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV runs")
}

func printRunsTable(runs []schema.RunRecord, cfg *contract.Config) error {
	if len(runs) == 0 {
		headerLine(cfg, "📭", "No runs recorded")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Run", "Started", "Duration", "Period", "Horizon", "Model", "Points", "Alerts"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	shown := min(len(runs), cfg.ResultLimit)
	var data [][]string
	for _, r := range runs[:shown] {
		row := []string{
			fmt.Sprintf("%d", r.RunID),
			r.StartTime.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%dms", r.RunDurationMs),
			fmt.Sprintf("%d", r.Period),
			fmt.Sprintf("%d", r.Horizon),
			r.Model,
			fmt.Sprintf("%d", r.SeriesPoints),
			fmt.Sprintf("%d", r.AlertCount),
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

	if remaining := len(runs) - shown; remaining > 0 {
		fmt.Printf("... and %d more\n", remaining)
	}
	return nil
}

// PrintStoreStatus outputs run store health figures. Structured formats get
// the status struct as-is; text output prints labelled lines.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON store status")
	default:
		headerLine(cfg, "🗄️", fmt.Sprintf("Run store (%s)", status.Backend))
		fmt.Printf("Connected:   %t\n", status.Connected)
		fmt.Printf("Total runs:  %d\n", status.TotalRuns)
		fmt.Printf("Total alerts: %d\n", status.TotalAlerts)
		if status.TotalRuns > 0 {
			fmt.Printf("Last run:    #%d at %s\n", status.LastRunID, status.LastRunTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("Oldest run:  %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		}
		for name, size := range status.TableSizes {
			fmt.Printf("Table %s: %d row(s)\n", name, size)
		}
		return nil
	}
}
