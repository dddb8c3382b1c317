package finderserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/recfinder/recording-finder/finder"
	"github.com/recfinder/recording-finder/finderserver/handler"
)

var Version = "dev"

func NewFinderServer(f *finder.Finder) (*server.MCPServer, error) {

	h := handler.NewRecordingHandler(f)

	s := server.NewMCPServer(
		"recording-finder",
		Version,
		server.WithResourceCapabilities(true, true),
	)

	// Register resource handlers
	s.AddResourceTemplate(mcp.NewResourceTemplate(
		"recording://{+path}",
		"Recording",
		mcp.WithTemplateDescription("A recording file, addressed by its path relative to the base directory"),
	), h.HandleReadResource)

	// Register tool handlers
	s.AddTool(mcp.NewTool(
		"search_recordings",
		mcp.WithDescription("Search IN/OUT folders of the recordings tree for files whose name contains a number, optionally limited to a month or a date range."),
		mcp.WithString("numero",
			mcp.Description("Number to look for in file names (literal, case-sensitive)"),
			mcp.Required(),
		),
		mcp.WithString("month",
			mcp.Description("Month filter, YYYY-MM. Takes precedence over start/end"),
		),
		mcp.WithString("start",
			mcp.Description("Range start, YYYY-MM-DD (inclusive)"),
		),
		mcp.WithString("end",
			mcp.Description("Range end, YYYY-MM-DD (inclusive)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (1-5000, default: server default)"),
		),
	), h.HandleSearchRecordings)

	s.AddTool(mcp.NewTool(
		"get_recording_info",
		mcp.WithDescription("Retrieve metadata about a recording: size, timestamps and MIME type."),
		mcp.WithString("path",
			mcp.Description("Path of the recording relative to the base directory"),
			mcp.Required(),
		),
	), h.HandleGetRecordingInfo)

	s.AddTool(mcp.NewTool(
		"list_months",
		mcp.WithDescription("Returns a JSON list of month directories and the IN/OUT folders found under each."),
		mcp.WithString("month",
			mcp.Description("Month filter, YYYY-MM"),
		),
		mcp.WithString("start",
			mcp.Description("Range start, YYYY-MM-DD (inclusive)"),
		),
		mcp.WithString("end",
			mcp.Description("Range end, YYYY-MM-DD (inclusive)"),
		),
	), h.HandleListMonths)

	s.AddTool(mcp.NewTool(
		"get_base_directory",
		mcp.WithDescription("Returns the recordings base directory this server searches."),
	), h.HandleGetBaseDirectory)

	return s, nil
}
