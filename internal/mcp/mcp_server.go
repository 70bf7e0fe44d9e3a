// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/covlens/covlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Covlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager, runner contract.GoRunner) *server.MCPServer {
	s := server.NewMCPServer(
		"Covlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		runner:  runner,
	}

	// --- 1. Tool: analyze_coverage ---
	s.AddTool(mcp.NewTool("analyze_coverage",
		mcp.WithDescription("Parse a Go coverage profile and return per-file statement coverage, sorted worst-first."),
		mcp.WithString("profile_path", mcp.Description("Path to the coverage profile (defaults to cover.out).")),
		mcp.WithNumber("threshold", mcp.Description("Coverage percentage below which a file is flagged. Defaults to the configured threshold.")),
		mcp.WithString("filter", mcp.Description("Only include files whose path starts with this prefix.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of low-coverage results returned.")),
	), h.handleAnalyzeCoverage)

	// --- 2. Tool: coverage_summary ---
	s.AddTool(mcp.NewTool("coverage_summary",
		mcp.WithDescription("Return the overall coverage percentage and pass/fail verdict against the threshold."),
		mcp.WithString("profile_path", mcp.Description("Path to the coverage profile (defaults to cover.out).")),
		mcp.WithNumber("threshold", mcp.Description("Coverage percentage the overall result must meet.")),
	), h.handleCoverageSummary)

	// --- 3. Tool: analyze_generics ---
	s.AddTool(mcp.NewTool("analyze_generics",
		mcp.WithDescription("Extract generic instantiations from Go compiler -gcflags=-m diagnostics and rank them."),
		mcp.WithString("dir", mcp.Description("Package directory to analyze (defaults to current directory).")),
		mcp.WithBoolean("test", mcp.Description("Include test compilation diagnostics.")),
		mcp.WithString("input", mcp.Description("Read saved compiler diagnostics from this file instead of running the toolchain.")),
	), h.handleAnalyzeGenerics)

	// --- 4. Tool: coverage_history ---
	s.AddTool(mcp.NewTool("coverage_history",
		mcp.WithDescription("List recent coverage report runs from the history store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleCoverageHistory)

	return s
}

// StartMCPServer starts the Covlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager, runner contract.GoRunner) error {
	s := NewMCPServer(baseCfg, mgr, runner)
	return server.ServeStdio(s)
}
