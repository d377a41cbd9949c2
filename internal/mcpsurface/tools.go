package mcpsurface

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nkvale/quickfind/internal/crawler"
	"github.com/nkvale/quickfind/pkg/types"
)

// handleSearchFiles handles the search_files tool invocation.
func (s *Server) handleSearchFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	queryText, ok := args["query"].(string)
	if !ok || queryText == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param": "query",
		})
	}

	scope, err := types.ParseScope(getStringDefault(args, "scope", "both"))
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid scope", map[string]interface{}{
			"param": "scope",
		})
	}

	q := types.Query{
		Text:           queryText,
		Glob:           getStringDefault(args, "glob", ""),
		Scope:          scope,
		Limit:          int32(getIntDefault(args, "limit", 50)),
		SortByModified: getBoolDefault(args, "sort_by_modified", false),
	}

	hits, err := s.engine.Search(q)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, len(hits))
	for i, h := range hits {
		results[i] = map[string]interface{}{
			"path":  h.Path,
			"name":  h.Name,
			"mtime": h.MTime,
			"size":  h.Size,
			"score": h.Score,
		}
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"results": results,
		"count":   len(results),
	})), nil
}

// handleIndexRoots handles the index_roots tool invocation.
func (s *Server) handleIndexRoots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	roots := getStringSlice(args, "roots")
	if len(roots) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "roots parameter is required and cannot be empty", map[string]interface{}{
			"param": "roots",
		})
	}
	full := getBoolDefault(args, "full", false)

	var err error
	if full {
		err = s.engine.ResetAndStart(ctx, roots)
	} else {
		err = s.engine.StartCrawl(ctx, roots, types.ModeIncremental, types.PhaseInitial, false)
	}
	if err != nil {
		if errors.Is(err, crawler.ErrIndexingInProgress) {
			return nil, newMCPError(ErrorCodeIndexingInProgress, "a crawl is already running", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "crawl failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	st := s.engine.Status()
	return mcp.NewToolResultText(formatJSON(statusPayload(st))), nil
}

// handleGetIndexStatus handles the get_index_status tool invocation.
func (s *Server) handleGetIndexStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.engine.Status()
	return mcp.NewToolResultText(formatJSON(statusPayload(st))), nil
}

func statusPayload(st types.State) map[string]interface{} {
	return map[string]interface{}{
		"is_running":          st.IsRunning,
		"phase":               st.Phase.String(),
		"status":              string(st.Status),
		"files_indexed":       st.FilesIndexed,
		"last_completed_at":   st.LastCompletedAt,
		"cloud_placeholders":  st.CloudPlaceholders,
		"run_id":              st.RunID,
	}
}
