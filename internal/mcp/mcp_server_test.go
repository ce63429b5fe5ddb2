package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/internal/contract"
	mcp_internal "tradescope/internal/mcp"
	"tradescope/schema"
)

// writeDataset writes a CSV with a noise-free trending series, one partner,
// long enough for period-12 decomposition.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trade.csv")

	content := "year,month,partner,tons\n"
	i := 0
	for year := 2020; year <= 2023; year++ {
		for month := 1; month <= 12; month++ {
			content += fmt.Sprintf("%d,%d,Brazil,%g\n", year, month, 1000+float64(i)*10)
			i++
		}
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseConfig() *contract.Config {
	return &contract.Config{
		Period:      12,
		Horizon:     6,
		Confidence:  0.95,
		Model:       schema.Additive,
		Sensitivity: schema.DefaultSensitivity(),
		ResultLimit: 25,
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerRunPipeline(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	path := writeDataset(t)

	res := callTool(t, s, "run_pipeline", map[string]any{
		"data_file": path,
		"horizon":   3.0,
	})
	require.False(t, res.IsError)

	var result schema.PipelineResult
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, 48, result.Decomposition.Series.Len())
	assert.Len(t, result.Forecast.Points, 3)
}

func TestMCPServerDecomposeSeries(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	path := writeDataset(t)

	res := callTool(t, s, "decompose_series", map[string]any{
		"data_file": path,
		"model":     "additive",
	})
	require.False(t, res.IsError)

	var decomp schema.Decomposition
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &decomp))
	assert.Equal(t, schema.Additive, decomp.Model)
	assert.Len(t, decomp.Trend, 48)
}

func TestMCPServerForecastSeries(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	path := writeDataset(t)

	res := callTool(t, s, "forecast_series", map[string]any{
		"data_file":  path,
		"horizon":    12.0,
		"confidence": 0.9,
	})
	require.False(t, res.IsError)

	var forecast schema.Forecast
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &forecast))
	assert.Len(t, forecast.Points, 12)
	assert.Equal(t, 0.9, forecast.Confidence)
}

func TestMCPServerHandlers_Errors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())

	t.Run("run_pipeline without dataset", func(t *testing.T) {
		res := callTool(t, s, "run_pipeline", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no dataset configured")
	})

	t.Run("run_pipeline with unknown model", func(t *testing.T) {
		path := writeDataset(t)
		res := callTool(t, s, "run_pipeline", map[string]any{
			"data_file": path,
			"model":     "robust",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "pipeline failed")
	})

	t.Run("run_pipeline with missing file", func(t *testing.T) {
		res := callTool(t, s, "run_pipeline", map[string]any{
			"data_file": filepath.Join(t.TempDir(), "missing.csv"),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "load failed")
	})
}
