package mcpsurface

import "github.com/mark3labs/mcp-go/mcp"

// searchFilesTool returns the tool definition for search_files.
func searchFilesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_files",
		Description: "Search indexed files by name and/or content",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": `Compact query: bare words, "quoted phrases", ext:<term>, OR`,
				},
				"scope": map[string]interface{}{
					"type":        "string",
					"description": "Which fields to search",
					"enum":        []string{"name", "content", "both"},
					"default":     "both",
				},
				"glob": map[string]interface{}{
					"type":        "string",
					"description": "Optional glob filter applied to the path after scoring, e.g. '**/vendor/**'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     50,
					"minimum":     1,
					"maximum":     1000,
				},
				"sort_by_modified": map[string]interface{}{
					"type":        "boolean",
					"description": "Stable re-sort by modification time descending, applied after ranking",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}
}

// indexRootsTool returns the tool definition for index_roots.
func indexRootsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_roots",
		Description: "Start a crawl over one or more filesystem roots",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"roots": map[string]interface{}{
					"type":        "array",
					"description": "Absolute paths to crawl",
					"items":       map[string]interface{}{"type": "string"},
				},
				"full": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, perform a full rebuild crawl instead of incremental",
					"default":     false,
				},
			},
			Required: []string{"roots"},
		},
	}
}

// getIndexStatusTool returns the tool definition for get_index_status.
func getIndexStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_index_status",
		Description: "Query the current crawl status and progress",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
