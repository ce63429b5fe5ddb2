// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tradescope/internal/contract"
)

// NewMCPServer initializes and configures the Tradescope MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Tradescope Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: run_pipeline ---
	s.AddTool(mcp.NewTool("run_pipeline",
		mcp.WithDescription("Run the full trade-flow pipeline: prepare, decompose, forecast, and evaluate alerts."),
		mcp.WithString("data_file", mcp.Description("Path to a CSV dataset (year, month, partner, tons columns).")),
		mcp.WithString("data_url", mcp.Description("URL of a CSV dataset, used when no file is given.")),
		mcp.WithString("partners", mcp.Description("Comma-separated partner filter (case-insensitive).")),
		mcp.WithNumber("period", mcp.Description("Seasonal cycle length in months. Defaults to 12.")),
		mcp.WithNumber("horizon", mcp.Description("Months to forecast ahead. Defaults to 12.")),
		mcp.WithNumber("confidence", mcp.Description("Forecast confidence level in (0, 1). Defaults to 0.95.")),
		mcp.WithString("model", mcp.Description("Decomposition model."), mcp.Enum("additive", "multiplicative")),
	), h.handleRunPipeline)

	// --- 2. Tool: decompose_series ---
	s.AddTool(mcp.NewTool("decompose_series",
		mcp.WithDescription("Decompose the monthly trade series into trend, seasonal, and residual components."),
		mcp.WithString("data_file", mcp.Description("Path to a CSV dataset.")),
		mcp.WithString("data_url", mcp.Description("URL of a CSV dataset, used when no file is given.")),
		mcp.WithString("partners", mcp.Description("Comma-separated partner filter (case-insensitive).")),
		mcp.WithNumber("period", mcp.Description("Seasonal cycle length in months. Defaults to 12.")),
		mcp.WithString("model", mcp.Description("Decomposition model."), mcp.Enum("additive", "multiplicative")),
	), h.handleDecomposeSeries)

	// --- 3. Tool: forecast_series ---
	s.AddTool(mcp.NewTool("forecast_series",
		mcp.WithDescription("Project the trade series forward with confidence bounds."),
		mcp.WithString("data_file", mcp.Description("Path to a CSV dataset.")),
		mcp.WithString("data_url", mcp.Description("URL of a CSV dataset, used when no file is given.")),
		mcp.WithString("partners", mcp.Description("Comma-separated partner filter (case-insensitive).")),
		mcp.WithNumber("period", mcp.Description("Seasonal cycle length in months. Defaults to 12.")),
		mcp.WithNumber("horizon", mcp.Description("Months to forecast ahead. Defaults to 12.")),
		mcp.WithNumber("confidence", mcp.Description("Forecast confidence level in (0, 1). Defaults to 0.95.")),
		mcp.WithString("model", mcp.Description("Decomposition model."), mcp.Enum("additive", "multiplicative")),
	), h.handleForecastSeries)

	return s
}

// StartMCPServer starts the Tradescope MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
