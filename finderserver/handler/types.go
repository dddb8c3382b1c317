package handler

import "strings"

const (
	// Maximum size for base64 encoding of a resource (1MB)
	MAX_BASE64_SIZE = 1 * 1024 * 1024
	// Maximum size for inline text content (5MB)
	MAX_INLINE_SIZE = 5 * 1024 * 1024
)

// isTextFile reports whether a MIME type can be returned as plain text.
func isTextFile(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") ||
		strings.HasPrefix(mimeType, "application/json") ||
		strings.HasPrefix(mimeType, "application/xml")
}
