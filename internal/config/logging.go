package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: path", "value", s.Path)
	logger.InfoContext(ctx, "Config: silent", "value", s.Silent)
	if s.SearchEnabled() {
		logger.InfoContext(ctx, "Config: find", "value", s.Find)
	} else {
		logger.InfoContext(ctx, "Config: find", "value", "<disabled>")
	}

	logger.InfoContext(ctx, "Config: workers", "value", s.Workers)
	if s.MaxDepth > 0 {
		logger.InfoContext(ctx, "Config: max_depth", "value", s.MaxDepth)
	}
	if s.Gitignore {
		logger.InfoContext(ctx, "Config: gitignore", "value", true)
	}
	if len(s.Extensions) > 0 {
		logger.InfoContext(ctx, "Config: extensions", "value", strings.Join(s.Extensions, ","))
	}
}

// ParseLogLevel maps a log-level setting to a slog level.
// An empty value maps to warn.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LogLevelDebug:
		return slog.LevelDebug, nil
	case LogLevelInfo:
		return slog.LevelInfo, nil
	case LogLevelWarn, "":
		return slog.LevelWarn, nil
	case LogLevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level: %s", level)
	}
}

// SettingsLogValue returns a slog.Value for Settings
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("path", s.Path),
		slog.Bool("silent", s.Silent),
		slog.String("find", s.Find),
		slog.Int("workers", s.Workers),
		slog.Int("max_depth", s.MaxDepth),
		slog.Bool("gitignore", s.Gitignore),
		slog.Any("extensions", s.Extensions),
	)
}
