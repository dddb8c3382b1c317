package handler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *RecordingHandler) HandleGetBaseDirectory(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	base := h.finder.Base()

	status := "available"
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		status = "missing"
	}

	var result strings.Builder
	result.WriteString("Base directory:\n\n")
	result.WriteString(fmt.Sprintf("%s (%s)\n", base, status))
	result.WriteString(fmt.Sprintf("\nDefault result limit: %d\n", h.finder.DefaultLimit()))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: result.String(),
			},
		},
	}, nil
}
