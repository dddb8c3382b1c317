package handler

import (
	"strings"

	"github.com/recfinder/recording-finder/finder"
)

const resourceScheme = "recording://"

// RecordingHandler serves MCP tools and resources over a Finder.
type RecordingHandler struct {
	finder *finder.Finder
}

func NewRecordingHandler(f *finder.Finder) *RecordingHandler {
	return &RecordingHandler{finder: f}
}

// pathToResourceURI converts a base-relative path to a resource URI
func pathToResourceURI(path string) string {
	return resourceScheme + path
}

// resourceURIToPath is the inverse of pathToResourceURI.
func resourceURIToPath(uri string) (string, bool) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return "", false
	}
	return strings.TrimPrefix(uri, resourceScheme), true
}
