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

// PrintForecast outputs forecast points, dispatching based on the output
// format configured.
func PrintForecast(f *schema.Forecast, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONForecast(f, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVForecast(f, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteForecastRowsParquet(parquet.ConvertForecast(f), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printForecastTable(f, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing forecast table output: %w", err)
		}
	}
	return nil
}

func printJSONForecast(f *schema.Forecast, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, f)
	}, "Wrote JSON forecast")
}

func printCSVForecast(f *schema.Forecast, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"month", "forecast", "lower", "upper"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range f.Points {
				row := []string{
					p.Time.Format(monthFormat),
					fmtFloat(p.Value),
					fmtFloat(p.Lower),
					fmtFloat(p.Upper),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV forecast")
}

// printForecastTable prints one row per projected month with its bounds.
func printForecastTable(f *schema.Forecast, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headerLine(cfg, "🔮", fmt.Sprintf("Forecast (%s, %.0f%% confidence)", f.Model, f.Confidence*100))

	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Month", "Forecast", "Lower", "Upper"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, p := range f.Points {
		row := []string{
			p.Time.Format(monthFormat),
			fmtFloat(p.Value),
			fmtFloat(p.Lower),
			fmtFloat(p.Upper),
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

	fmt.Printf("Projected %d month(s) in %v\n", len(f.Points), duration)
	return nil
}
