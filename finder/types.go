package finder

import "time"

const (
	// Default number of search results when a query does not set one.
	DEFAULT_LIMIT = 200
	// Hard ceiling for a per-query limit.
	MAX_LIMIT = 5000
	// Bytes of a zip batch kept in memory before spilling to a temp file (100MB).
	DEFAULT_ZIP_MEMORY_LIMIT = 100 * 1024 * 1024
	// Archive name used when a batch request does not provide one.
	DEFAULT_ZIP_NAME = "arquivos.zip"

	// dateLayout is the accepted format of start/end bounds. Month and day
	// may be given without zero-padding.
	dateLayout = "2006-1-2"
	// modifiedLayout is ISO 8601 at second precision without an offset.
	modifiedLayout = "2006-01-02T15:04:05"
)

// Query selects recordings by number and time window.
//
// Month takes precedence over Start/End. Start and End must both parse as
// YYYY-MM-DD for the range to apply; otherwise the window is dropped and every
// month directory is searched.
type Query struct {
	Numero string
	Month  string
	Start  string
	End    string
	Limit  int
}

// Result is one matched recording.
type Result struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// FileInfo is detailed metadata about a recording under the base directory.
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Accessed time.Time `json:"accessed"`
	MIMEType string    `json:"mimeType"`
}

// MonthNode is a month directory together with the IN/OUT folders found under it.
type MonthNode struct {
	Name  string   `json:"name"`
	InOut []string `json:"inOut"`
}
