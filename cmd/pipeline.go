package cmd

import (
	"context"
	"strconv"
	"strings"

	"tradescope/core"
	"tradescope/internal/contract"
	"tradescope/internal/loader"
	"tradescope/schema"
)

// loadRecords reads the configured dataset and applies the year, month, and
// partner filters.
func loadRecords(ctx context.Context, cfg *contract.Config) ([]schema.TradeRecord, error) {
	records, err := loader.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return loader.Filter(records, cfg.Years, cfg.Months, cfg.Partners), nil
}

// loadSeries aggregates the filtered records into one monthly series.
func loadSeries(ctx context.Context, cfg *contract.Config) ([]schema.TimePoint, error) {
	records, err := loadRecords(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return loader.Aggregate(records), nil
}

// loadDecomposition runs the preparation and decomposition stages for the
// commands that stop before forecasting.
func loadDecomposition(ctx context.Context, cfg *contract.Config) (*schema.Decomposition, error) {
	raw, err := loadSeries(ctx, cfg)
	if err != nil {
		return nil, err
	}
	series, err := core.Prepare(raw, cfg.Period)
	if err != nil {
		return nil, err
	}
	return core.Decompose(series, cfg.Model)
}

// runConfigParams captures the invocation parameters persisted with a run.
func runConfigParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"output": string(cfg.Output),
	}
	if cfg.DataFile != "" {
		params["data_file"] = cfg.DataFile
	}
	if cfg.DataURL != "" {
		params["data_url"] = cfg.DataURL
	}
	if len(cfg.Partners) > 0 {
		params["partners"] = strings.Join(cfg.Partners, ",")
	}
	if len(cfg.Years) > 0 {
		years := make([]string, len(cfg.Years))
		for i, y := range cfg.Years {
			years[i] = strconv.Itoa(y)
		}
		params["years"] = strings.Join(years, ",")
	}
	return params
}
