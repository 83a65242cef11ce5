package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by LoadSettings
const EnvPrefix = "KWSCAN"

// Log level names accepted by the log-level setting
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// DefaultLineWidth is the report rule width used when the terminal width is unknown
const DefaultLineWidth = 60

// ErrPathNotFound indicates the configured search path does not exist
var ErrPathNotFound = errors.New("please input a correct path")

// Settings application settings
type Settings struct {
	Path       string   `mapstructure:"path"`
	Silent     bool     `mapstructure:"silent"`
	Find       string   `mapstructure:"find"` // Empty disables the search
	Workers    int      `mapstructure:"workers"`
	MaxDepth   int      `mapstructure:"max_depth"` // 0 means unlimited
	Gitignore  bool     `mapstructure:"gitignore"`
	Extensions []string `mapstructure:"extensions"` // Empty means the built-in set
	Width      int      `mapstructure:"width"`      // 0 means query the terminal
	NoColor    bool     `mapstructure:"no_color"`
	LogLevel   string   `mapstructure:"log_level"`
}

// SearchEnabled reports whether a search term was configured.
func (s *Settings) SearchEnabled() bool {
	return s.Find != ""
}

// WithPath returns a copy of the settings rooted at another path.
func (s Settings) WithPath(path string) Settings {
	s.Path = path
	s.Extensions = append([]string(nil), s.Extensions...)
	return s
}

// Banner renders the human readable settings summary printed before a search.
func (s *Settings) Banner() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Selected path is: %s\n", s.Path))
	if s.Silent {
		sb.WriteString("Silent mode is on.\n")
	} else {
		sb.WriteString("Silent mode is off.\n")
	}
	if s.SearchEnabled() {
		sb.WriteString(fmt.Sprintf("Search system will track: '%s'.", s.Find))
	} else {
		sb.WriteString("Search system is desactivated.")
	}
	return sb.String()
}

// LoadSettings loads settings from environment variables
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("path", "")
	v.SetDefault("silent", false)
	v.SetDefault("find", "")
	v.SetDefault("workers", 1)
	v.SetDefault("max_depth", 0)
	v.SetDefault("gitignore", false)
	v.SetDefault("extensions", []string{})
	v.SetDefault("width", 0)
	v.SetDefault("no_color", false)
	v.SetDefault("log_level", LogLevelWarn)

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("path", EnvPrefix+"_PATH")
	_ = v.BindEnv("silent", EnvPrefix+"_SILENT")
	_ = v.BindEnv("find", EnvPrefix+"_FIND")
	_ = v.BindEnv("workers", EnvPrefix+"_WORKERS")
	_ = v.BindEnv("max_depth", EnvPrefix+"_MAX_DEPTH")
	_ = v.BindEnv("gitignore", EnvPrefix+"_GITIGNORE")
	_ = v.BindEnv("extensions", EnvPrefix+"_EXTENSIONS")
	_ = v.BindEnv("width", EnvPrefix+"_WIDTH")
	_ = v.BindEnv("no_color", EnvPrefix+"_NO_COLOR")
	_ = v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		bindFlag(v, flags, "path", "path")
		bindFlag(v, flags, "silent", "silent")
		bindFlag(v, flags, "find", "find")
		bindFlag(v, flags, "workers", "workers")
		bindFlag(v, flags, "max_depth", "max-depth")
		bindFlag(v, flags, "gitignore", "gitignore")
		bindFlag(v, flags, "extensions", "extensions")
		bindFlag(v, flags, "width", "width")
		bindFlag(v, flags, "no_color", "no-color")
		bindFlag(v, flags, "log_level", "log-level")
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Comma-separated extensions from the environment arrive as a single element
	extEnv := os.Getenv(EnvPrefix + "_EXTENSIONS")
	if extEnv != "" {
		if len(settings.Extensions) == 0 || (len(settings.Extensions) == 1 && strings.Contains(settings.Extensions[0], ",")) {
			settings.Extensions = strings.Split(extEnv, ",")
		}
	}
	settings.Extensions = normalizeExtensions(settings.Extensions)
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))

	return &settings, nil
}

// bindFlag binds a flag to a key when the flag set defines it
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, flagName string) {
	if f := flags.Lookup(flagName); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// normalizeExtensions trims spaces and leading dots and drops empty entries
func normalizeExtensions(exts []string) []string {
	var result []string
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			result = append(result, ext)
		}
	}
	return result
}

// Normalize resolves an empty path to the canonical current directory.
func Normalize(s *Settings) error {
	if s.Path != "" {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve current directory: %w", err)
	}
	canonical, err := filepath.EvalSymlinks(wd)
	if err != nil {
		return fmt.Errorf("failed to canonicalize current directory: %w", err)
	}
	s.Path = canonical
	return nil
}

// ValidatePath checks that the search root exists.
// It returns an error wrapping ErrPathNotFound when it does not.
func ValidatePath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return nil
}

// ValidateSettings checks for out of range or unknown values.
func ValidateSettings(s *Settings) error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d", s.Workers)
	}

	if s.MaxDepth < 0 {
		return errors.New("max-depth cannot be negative")
	}

	if s.Width < 0 {
		return errors.New("width cannot be negative")
	}

	switch s.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
		// valid
	default:
		return errors.New("unknown log-level: " + s.LogLevel)
	}

	for _, ext := range s.Extensions {
		if strings.ContainsAny(ext, `/\`) {
			return errors.New("invalid extension: " + ext)
		}
	}

	return nil
}
