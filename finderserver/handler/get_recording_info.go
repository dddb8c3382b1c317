package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/recfinder/recording-finder/finder"
)

func (h *RecordingHandler) HandleGetRecordingInfo(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return nil, err
	}

	info, err := h.finder.Stat(path)
	if err != nil {
		text := fmt.Sprintf("Error getting recording info: %v", err)
		if errors.Is(err, finder.ErrInvalidPath) {
			text = fmt.Sprintf("Error: path is outside the base directory: %s", path)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
			IsError: true,
		}, nil
	}

	resourceURI := pathToResourceURI(info.Path)

	created := "unknown"
	if !info.Created.IsZero() {
		created = info.Created.Format(time.RFC3339)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: fmt.Sprintf(
					"Recording information for: %s\n\nName: %s\nSize: %d bytes\nCreated: %s\nModified: %s\nAccessed: %s\nMIME Type: %s\nResource URI: %s",
					info.Path,
					info.Name,
					info.Size,
					created,
					info.Modified.Format(time.RFC3339),
					info.Accessed.Format(time.RFC3339),
					info.MIMEType,
					resourceURI,
				),
			},
			mcp.EmbeddedResource{
				Type: "resource",
				Resource: mcp.TextResourceContents{
					URI:      resourceURI,
					MIMEType: "text/plain",
					Text:     fmt.Sprintf("Recording: %s (%s, %d bytes)", info.Path, info.MIMEType, info.Size),
				},
			},
		},
	}, nil
}
