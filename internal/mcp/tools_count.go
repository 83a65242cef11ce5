package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/kwscan/internal/config"
	"github.com/sha1n/kwscan/internal/report"
	"github.com/sha1n/kwscan/internal/scan"
)

// CountArgument defines keyword count parameters.
type CountArgument struct {
	Path       string   `json:"path" jsonschema:"Directory or file to search"`
	Keyword    string   `json:"keyword" jsonschema:"Exact, case-sensitive text to count"`
	Extensions []string `json:"extensions,omitempty" jsonschema:"File extensions to scan without the leading dot (defaults to the built-in set)"`
}

// CountHandler handles the count_keyword MCP tool.
type CountHandler struct {
	defaults config.Settings
}

// NewCountHandler creates a new count handler.
func NewCountHandler(defaults config.Settings) *CountHandler {
	if defaults.Workers < 1 {
		defaults.Workers = 1
	}
	return &CountHandler{
		defaults: defaults,
	}
}

// Handle runs a silent search and returns the formatted report.
func (h *CountHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CountArgument) (*mcp.CallToolResult, any, error) {
	if args.Path == "" {
		return errorResult("Path cannot be empty"), nil, nil
	}

	// Whitespace is a valid term
	if args.Keyword == "" {
		return errorResult("Keyword cannot be empty"), nil, nil
	}

	settings := h.defaults.WithPath(args.Path)
	settings.Find = args.Keyword
	settings.Silent = true
	if len(args.Extensions) > 0 {
		settings.Extensions = args.Extensions
	}

	if err := config.ValidateSettings(&settings); err != nil {
		return errorResult(fmt.Sprintf("Invalid arguments: %s", err)), nil, nil
	}

	if err := config.ValidatePath(settings.Path); err != nil {
		return errorResult(fmt.Sprintf("Please input a correct path: %s", settings.Path)), nil, nil
	}

	scanner := scan.NewScanner(&settings, nil)
	result, err := scanner.Search(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errorResult("Search was cancelled"), nil, nil
		}
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	stats := scanner.Stats()
	slog.DebugContext(ctx, "Keyword count finished",
		"path", settings.Path,
		"files", stats.Files,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"matches", result.MatchingFileCount())

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: report.Format(result, &settings, settings.Width)},
		},
	}, nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *CountHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "count_keyword",
		Description: "Count exact occurrences of a keyword in text files under a directory",
	}
}

// RegisterCountTool registers the count tool with an MCP server.
func RegisterCountTool(server *mcp.Server, defaults config.Settings) {
	handler := NewCountHandler(defaults)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}
