package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/recfinder/recording-finder/finder"
)

func (h *RecordingHandler) HandleListMonths(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
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

	months := finder.ResolveWindow(month, request.GetString("start", ""), request.GetString("end", ""))
	nodes := h.finder.ListMonths(months)

	// Convert to JSON
	jsonData, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Error generating JSON: %v", err),
				},
			},
			IsError: true,
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: fmt.Sprintf("Found %d month directories under %s:\n\n%s", len(nodes), h.finder.Base(), string(jsonData)),
			},
			mcp.EmbeddedResource{
				Type: "resource",
				Resource: mcp.TextResourceContents{
					URI:      resourceScheme,
					MIMEType: "application/json",
					Text:     string(jsonData),
				},
			},
		},
	}, nil
}
