package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"tradescope/internal/contract"
	"tradescope/schema"
)

// summaryPayload bundles the headline figures with the partner breakdown for
// structured output.
type summaryPayload struct {
	Summary  schema.DatasetSummary `json:"summary"`
	Partners []schema.PartnerTotal `json:"partners"`
}

// PrintDatasetSummary outputs dataset headline figures and the top partner
// totals, dispatching based on the output format configured.
func PrintDatasetSummary(summary schema.DatasetSummary, totals []schema.PartnerTotal, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONSummary(summary, totals, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVSummary(totals, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printSummaryTable(summary, totals, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing summary table output: %w", err)
		}
	}
	return nil
}

func printJSONSummary(summary schema.DatasetSummary, totals []schema.PartnerTotal, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summaryPayload{Summary: summary, Partners: totals})
	}, "Wrote JSON summary")
}

func printCSVSummary(totals []schema.PartnerTotal, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"partner", "tons", "share"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, t := range totals {
				row := []string{t.Partner, fmtFloat(t.Tons), fmt.Sprintf("%.4f", t.Share)}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV summary")
}

// printSummaryTable prints the headline figures followed by a partner table,
// truncating partner names to the terminal-derived width.
func printSummaryTable(summary schema.DatasetSummary, totals []schema.PartnerTotal, cfg *contract.Config, fmtFloat func(float64) string) error {
	headerLine(cfg, "📊", fmt.Sprintf("Dataset: %d record(s), %d partner(s), %s to %s",
		summary.Records, summary.Partners, summary.FirstPeriod, summary.LatestPeriod))
	fmt.Printf("Total tons: %s  Monthly mean: %s  Months: %d\n",
		fmtFloat(summary.TotalTons), fmtFloat(summary.MonthlyMean), summary.Months)

	if len(totals) == 0 {
		return nil
	}

	nameWidth := GetMaxTableNameWidth(cfg)

	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Partner", "Tons", "Share"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, t := range totals {
		row := []string{
			contract.TruncateName(t.Partner, nameWidth),
			fmtFloat(t.Tons),
			fmt.Sprintf("%.1f%%", t.Share*100),
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
