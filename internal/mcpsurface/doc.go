// Package mcpsurface exposes internal/core.Engine as an MCP server: a
// Server wrapping mark3labs/mcp-go, one tool definition per operation, and
// handlers that extract arguments from a map[string]interface{}, validate
// them, and return mcp.NewToolResultText(formatJSON(...)) or a protocol
// MCPError.
//
// This surface exposes index_roots/search_files/get_index_status over a
// single global index — no per-project storage lookup, since there is only
// ever one index directory.
package mcpsurface
