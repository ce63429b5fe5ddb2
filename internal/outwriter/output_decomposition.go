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

// PrintDecomposition outputs decomposition components, dispatching based on
// the output format configured.
func PrintDecomposition(d *schema.Decomposition, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONDecomposition(d, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVDecomposition(d, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteDecompositionRowsParquet(parquet.ConvertDecomposition(d), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printDecompositionTable(d, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing decomposition table output: %w", err)
		}
	}
	return nil
}

func printJSONDecomposition(d *schema.Decomposition, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, d)
	}, "Wrote JSON decomposition")
}

func printCSVDecomposition(d *schema.Decomposition, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"month", "observed", "trend", "seasonal", "residual"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i := range d.Len() {
				row := []string{
					d.Series.Points[i].Time.Format(monthFormat),
					fmtFloat(d.Series.Points[i].Value),
					fmtFloat(d.Trend[i]),
					fmtFloat(d.Seasonal[i]),
					fmtFloat(d.Residual[i]),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV decomposition")
}

// printDecompositionTable prints one row per month with all four components.
func printDecompositionTable(d *schema.Decomposition, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headerLine(cfg, "🔍", fmt.Sprintf("Decomposition (%s, period %d)", d.Model, d.Series.Period))

	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Month", "Observed", "Trend", "Seasonal", "Residual"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for i := range d.Len() {
		row := []string{
			d.Series.Points[i].Time.Format(monthFormat),
			fmtFloat(d.Series.Points[i].Value),
			fmtFloat(d.Trend[i]),
			fmtFloat(d.Seasonal[i]),
			fmtFloat(d.Residual[i]),
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

	fmt.Printf("Decomposed %d month(s) in %v\n", d.Len(), duration)
	return nil
}
