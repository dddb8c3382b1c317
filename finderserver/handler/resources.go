package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/recfinder/recording-finder/finder"
)

// HandleReadResource returns a recording addressed as recording://<path>.
func (h *RecordingHandler) HandleReadResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI

	path, ok := resourceURIToPath(uri)
	if !ok {
		return nil, fmt.Errorf("unsupported URI scheme: %s", uri)
	}

	validPath, err := h.finder.Resolve(path)
	if err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(validPath)
	if err != nil {
		return nil, err
	}

	mimeType := finder.DetectMIME(validPath)

	if isTextFile(mimeType) && fileInfo.Size() <= MAX_INLINE_SIZE {
		content, err := os.ReadFile(validPath)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: mimeType,
				Text:     string(content),
			},
		}, nil
	}

	if fileInfo.Size() > MAX_BASE64_SIZE {
		// Too large for base64, point at the HTTP download instead
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     fmt.Sprintf("Recording is too large to embed (%s, %d bytes). Download it via GET /download?path=%s", mimeType, fileInfo.Size(), path),
			},
		}, nil
	}

	content, err := os.ReadFile(validPath)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.BlobResourceContents{
			URI:      uri,
			MIMEType: mimeType,
			Blob:     base64.StdEncoding.EncodeToString(content),
		},
	}, nil
}
