// Package mcp exposes summary generation and sharing as MCP tools over stdio
package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the name reported during the MCP handshake
const ServerName = "minutes"

var generateSummaryToolDef = mcp.NewTool("generate_summary",
	mcp.WithDescription("Summarize a meeting transcript following free-form instructions."),
	mcp.WithString("transcript",
		mcp.Required(),
		mcp.Description("Full meeting transcript text"),
	),
	mcp.WithString("customPrompt",
		mcp.Required(),
		mcp.Description("Instructions for the summary, e.g. \"List action items\""),
	),
)

var shareSummaryToolDef = mcp.NewTool("share_summary",
	mcp.WithDescription("Email a summary to a comma-separated list of recipients. Runs in demo mode when no mail credentials are configured."),
	mcp.WithString("summary",
		mcp.Required(),
		mcp.Description("Summary text to send"),
	),
	mcp.WithString("recipients",
		mcp.Required(),
		mcp.Description("Comma-separated email addresses"),
	),
	mcp.WithString("subject",
		mcp.Required(),
		mcp.Description("Email subject line"),
	),
	mcp.WithString("message",
		mcp.Description("Optional note placed above the summary"),
	),
)

// toolEntry pairs a tool definition with a handler factory
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var toolRegistry = map[string]toolEntry{
	"generate_summary": {
		def:     generateSummaryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerateSummary },
	},
	"share_summary": {
		def:     shareSummaryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleShareSummary },
	},
}

// ToolNames returns the registered tool names in sorted order
func ToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer creates an MCP server with every tool registered
func NewServer(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	for _, name := range ToolNames() {
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run serves the tools on stdin/stdout until the input closes
func Run(h *Handlers, version string) error {
	return server.ServeStdio(NewServer(h, version))
}
