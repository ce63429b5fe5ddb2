// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"tradescope/internal/contract"
	"tradescope/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePipeline prints a full pipeline result using the configured output format.
func (ow *OutWriter) WritePipeline(res *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	return PrintPipelineResult(res, cfg, duration)
}

// WriteDecomposition prints decomposition components using the configured output format.
func (ow *OutWriter) WriteDecomposition(d *schema.Decomposition, cfg *contract.Config, duration time.Duration) error {
	return PrintDecomposition(d, cfg, duration)
}

// WriteForecast prints forecast points using the configured output format.
func (ow *OutWriter) WriteForecast(f *schema.Forecast, cfg *contract.Config, duration time.Duration) error {
	return PrintForecast(f, cfg, duration)
}

// WriteAlerts prints alerts using the configured output format.
func (ow *OutWriter) WriteAlerts(alerts []schema.Alert, cfg *contract.Config, duration time.Duration) error {
	return PrintAlerts(alerts, cfg, duration)
}

// WriteSummary prints dataset summary figures using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.DatasetSummary, totals []schema.PartnerTotal, cfg *contract.Config) error {
	return PrintDatasetSummary(summary, totals, cfg)
}

// GetMaxTableNameWidth calculates the maximum width for partner or label
// columns in table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with table formatting
	baseWidth := 45

	// Calculate available space for the name column
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 50 {
		// Maximum name width to prevent overly wide tables
		return 50
	}
	return available
}
