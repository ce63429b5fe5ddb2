package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"tradescope/core"
	"tradescope/internal/contract"
	"tradescope/internal/loader"
	"tradescope/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyCommonArgs overlays shared tool arguments onto a cloned config.
func applyCommonArgs(cfg *contract.Config, request mcp.CallToolRequest) {
	if f := request.GetString("data_file", ""); f != "" {
		cfg.DataFile = f
	}
	if u := request.GetString("data_url", ""); u != "" {
		cfg.DataURL = u
	}
	if p := request.GetString("partners", ""); p != "" {
		cfg.Partners = nil
		for part := range strings.SplitSeq(p, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Partners = append(cfg.Partners, part)
			}
		}
	}
	if p := request.GetInt("period", 0); p > 0 {
		cfg.Period = p
	}
	if h := request.GetInt("horizon", 0); h > 0 {
		cfg.Horizon = h
	}
	if c := request.GetFloat("confidence", 0); c > 0 {
		cfg.Confidence = c
	}
	if m := request.GetString("model", ""); m != "" {
		cfg.Model = schema.Model(m)
	}
}

// loadSeries reads, filters, and aggregates the configured dataset into a
// monthly series.
func loadSeries(ctx context.Context, cfg *contract.Config) ([]schema.TimePoint, error) {
	records, err := loader.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	records = loader.Filter(records, cfg.Years, cfg.Months, cfg.Partners)
	return loader.Aggregate(records), nil
}

func (h *toolHandler) handleRunPipeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyCommonArgs(cfg, request)

	raw, err := loadSeries(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	result, err := core.Run(raw, cfg.Period, cfg.Horizon, cfg.Confidence, cfg.Sensitivity, cfg.Model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pipeline failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDecomposeSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyCommonArgs(cfg, request)

	raw, err := loadSeries(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	series, err := core.Prepare(raw, cfg.Period)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("preparation failed: %v", err)), nil
	}
	decomp, err := core.Decompose(series, cfg.Model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decomposition failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(decomp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleForecastSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyCommonArgs(cfg, request)

	raw, err := loadSeries(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	series, err := core.Prepare(raw, cfg.Period)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("preparation failed: %v", err)), nil
	}
	decomp, err := core.Decompose(series, cfg.Model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decomposition failed: %v", err)), nil
	}
	forecast, err := core.Project(decomp, cfg.Horizon, cfg.Confidence)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(forecast, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
