package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/recfinder/recording-finder/finder"
)

func (h *RecordingHandler) HandleSearchRecordings(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	numero, err := request.RequireString("numero")
	if err != nil {
		return nil, err
	}

	month := request.GetString("month", "")
	if month != "" && !finder.ValidMonth(month) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: "Error: month must be YYYY-MM",
				},
			},
			IsError: true,
		}, nil
	}

	limit := request.GetInt("limit", h.finder.DefaultLimit())
	if limit < 1 || limit > finder.MAX_LIMIT {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Error: limit must be between 1 and %d", finder.MAX_LIMIT),
				},
			},
			IsError: true,
		}, nil
	}

	results, err := h.finder.Search(ctx, finder.Query{
		Numero: numero,
		Month:  month,
		Start:  request.GetString("start", ""),
		End:    request.GetString("end", ""),
		Limit:  limit,
	})
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Error searching recordings: %v", err),
				},
			},
			IsError: true,
		}, nil
	}

	if len(results) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("No recordings found matching '%s'", strings.TrimSpace(numero)),
				},
			},
		}, nil
	}

	// Format results with resource URIs
	var formattedResults strings.Builder
	formattedResults.WriteString(fmt.Sprintf("Found %d results:\n\n", len(results)))

	for _, result := range results {
		formattedResults.WriteString(fmt.Sprintf("[FILE] %s (%s) - %d bytes, modified %s\n",
			result.Path, pathToResourceURI(result.Path), result.Size, result.Modified))
	}

	if len(results) >= limit {
		formattedResults.WriteString(fmt.Sprintf("\nNote: Results limited to %d matches. There may be more recordings.", limit))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: formattedResults.String(),
			},
		},
	}, nil
}
