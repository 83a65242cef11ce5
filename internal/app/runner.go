package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/kwscan/internal/config"
	"github.com/sha1n/kwscan/internal/console"
	mcputil "github.com/sha1n/kwscan/internal/mcp"
	"github.com/sha1n/kwscan/internal/report"
	"github.com/sha1n/kwscan/internal/scan"
	"github.com/spf13/pflag"
)

// RunParams contains dependencies for the run functions
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	CreateServer      func(*config.Settings, string) *mcp.Server
	Stdout            io.Writer     // Optional: defaults to os.Stdout
	Stderr            io.Writer     // Optional: defaults to os.Stderr
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSettings,
		CreateServer:  CreateMCPServer,
	}
}

// RunWithDeps executes a keyword search with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := config.Normalize(settings); err != nil {
		return err
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configureLogging(params, settings)

	slog.Info("Starting kwscan", "version", version)
	config.Log(settings)

	stdout := params.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	printer := console.NewPrinter(stdout, settings.NoColor)

	if !settings.Silent {
		printer.Println(settings.Banner())
	}

	if err := config.ValidatePath(settings.Path); err != nil {
		printer.Println("Please input a correct path")
		return err
	}

	start := time.Now()
	scanner := scan.NewScanner(settings, printer)
	result, err := scanner.Search(ctx)
	if err != nil {
		return fmt.Errorf("search interrupted: %w", err)
	}

	stdoutFile, _ := stdout.(*os.File)
	printer.Println(report.Format(result, settings, console.LineWidth(settings, stdoutFile)))

	if settings.SearchEnabled() {
		printer.Println(fmt.Sprintf("The search took %dms", time.Since(start).Milliseconds()))
	}

	stats := scanner.Stats()
	slog.Debug("Search finished",
		"dirs", stats.Dirs,
		"files", stats.Files,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"matches", result.MatchingFileCount(),
		"occurrences", result.TotalOccurrences())

	return nil
}

// ServeWithDeps runs the MCP server over stdio with the provided dependencies
func ServeWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configureLogging(params, settings)

	slog.Info("Starting kwscan MCP server", "version", version)
	config.Log(settings)

	mcpServer := params.CreateServer(settings, version)

	// Use custom transport if provided (for testing), otherwise use stdio
	transport := params.CustomIOTransport
	if transport == nil {
		transport = &mcp.StdioTransport{}
	}
	return mcpServer.Run(ctx, transport)
}

// CreateMCPServer creates the MCP server with registered tools
func CreateMCPServer(settings *config.Settings, version string) *mcp.Server {
	return mcputil.CreateServer(mcputil.ServerConfig{
		Name:     "kwscan",
		Version:  version,
		Defaults: *settings,
	})
}

// configureLogging installs the default logger.
// Logs always go to stderr so they never mix with the report or the MCP stream.
func configureLogging(params RunParams, settings *config.Settings) {
	stderr := params.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level, err := config.ParseLogLevel(settings.LogLevel)
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	if err != nil {
		slog.Warn("Falling back to default log level", "error", err)
	}
}
