package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/covlens/covlens/core"
	"github.com/covlens/covlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
	runner  contract.GoRunner
}

func (h *toolHandler) handleAnalyzeCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("profile_path", ""); p != "" {
		cfg.ProfilePath = p
	}
	if th := request.GetFloat("threshold", 0); th > 0 {
		cfg.Threshold = th
	}
	if f := request.GetString("filter", ""); f != "" {
		cfg.PathFilter = f
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.TopLimit = l
	}

	report, err := core.GetCoverageResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	if len(report.LowCoverage) > cfg.TopLimit {
		report.LowCoverage = report.LowCoverage[:cfg.TopLimit]
	}
	jsonData, _ := json.MarshalIndent(report, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCoverageSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("profile_path", ""); p != "" {
		cfg.ProfilePath = p
	}
	if th := request.GetFloat("threshold", 0); th > 0 {
		cfg.Threshold = th
	}

	report, err := core.GetCoverageResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	summary := map[string]any{
		"overall_percent":      report.OverallPercent,
		"threshold":            cfg.Threshold,
		"passed":               report.OverallPercent >= cfg.Threshold,
		"total_files":          report.TotalFiles,
		"total_statements":     report.TotalStatements,
		"covered_statements":   report.CoveredStatements,
		"uncovered_statements": report.UncoveredStatements(),
		"files_below":          len(report.LowCoverage),
	}
	jsonData, _ := json.MarshalIndent(summary, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeGenerics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("dir", ""); d != "" {
		cfg.GenericsDir = d
	}
	cfg.GenericsTest = request.GetBool("test", cfg.GenericsTest)
	if in := request.GetString("input", ""); in != "" {
		cfg.GenericsInput = in
	}

	report, err := core.GetGenericsResults(ctx, cfg, h.runner)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generics analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCoverageHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("history tracking is not initialized"), nil
	}
	store := h.mgr.GetHistoryStore()
	if store == nil {
		return mcp.NewToolResultError("history tracking is not initialized"), nil
	}

	limit := request.GetInt("limit", h.baseCfg.TopLimit)
	runs, err := store.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultError("no run history found"), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
