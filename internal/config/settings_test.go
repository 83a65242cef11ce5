package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadSettings_Defaults(t *testing.T) {
	_ = os.Unsetenv("KWSCAN_WORKERS")
	_ = os.Unsetenv("KWSCAN_FIND")

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if settings.Path != "" {
		t.Errorf("Expected empty default path, got '%s'", settings.Path)
	}
	if settings.Silent {
		t.Error("Expected silent to default to false")
	}
	if settings.SearchEnabled() {
		t.Error("Expected search to be disabled by default")
	}
	if settings.Workers != 1 {
		t.Errorf("Expected default workers 1, got %d", settings.Workers)
	}
	if settings.MaxDepth != 0 {
		t.Errorf("Expected default max depth 0, got %d", settings.MaxDepth)
	}
	if settings.LogLevel != LogLevelWarn {
		t.Errorf("Expected default log level '%s', got '%s'", LogLevelWarn, settings.LogLevel)
	}
	if len(settings.Extensions) != 0 {
		t.Errorf("Expected no extension override, got %v", settings.Extensions)
	}
}

func TestLoadSettings_EnvVars(t *testing.T) {
	t.Setenv("KWSCAN_PATH", "/tmp/somewhere")
	t.Setenv("KWSCAN_FIND", "hello")
	t.Setenv("KWSCAN_SILENT", "true")
	t.Setenv("KWSCAN_WORKERS", "4")
	t.Setenv("KWSCAN_MAX_DEPTH", "3")

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if settings.Path != "/tmp/somewhere" {
		t.Errorf("Expected path '/tmp/somewhere', got '%s'", settings.Path)
	}
	if settings.Find != "hello" {
		t.Errorf("Expected find 'hello', got '%s'", settings.Find)
	}
	if !settings.Silent {
		t.Error("Expected silent from env")
	}
	if settings.Workers != 4 {
		t.Errorf("Expected workers 4, got %d", settings.Workers)
	}
	if settings.MaxDepth != 3 {
		t.Errorf("Expected max depth 3, got %d", settings.MaxDepth)
	}
}

func TestLoadSettings_Extensions_EnvVar(t *testing.T) {
	t.Setenv("KWSCAN_EXTENSIONS", "go, .md,,txt")

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	want := []string{"go", "md", "txt"}
	if !slices.Equal(settings.Extensions, want) {
		t.Errorf("Expected extensions %v, got %v", want, settings.Extensions)
	}
}

func TestLoadSettings_InvalidConfig(t *testing.T) {
	t.Setenv("KWSCAN_WORKERS", "not-a-number")

	_, err := LoadSettings()
	if err == nil {
		t.Fatal("Expected error for invalid workers type")
	}
}

func TestLoadSettingsWithFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("KWSCAN_FIND", "from-env")
	t.Setenv("KWSCAN_WORKERS", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("find", "", "")
	flags.Int("workers", 1, "")
	_ = flags.Set("find", "from-flag")
	_ = flags.Set("workers", "2")

	settings, err := LoadSettingsWithFlags(flags)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if settings.Find != "from-flag" {
		t.Errorf("Expected CLI find 'from-flag', got '%s'", settings.Find)
	}
	if settings.Workers != 2 {
		t.Errorf("Expected CLI workers 2, got %d", settings.Workers)
	}
}

func TestLoadSettingsWithFlags_EnvOverridesUnsetFlag(t *testing.T) {
	t.Setenv("KWSCAN_FIND", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("find", "", "")

	settings, err := LoadSettingsWithFlags(flags)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if settings.Find != "from-env" {
		t.Errorf("Expected env find 'from-env', got '%s'", settings.Find)
	}
}

func TestLoadSettingsWithFlags_AllFlagTypes(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("path", "", "")
	flags.Bool("silent", false, "")
	flags.String("find", "", "")
	flags.Int("workers", 1, "")
	flags.Int("max-depth", 0, "")
	flags.Bool("gitignore", false, "")
	flags.StringSlice("extensions", nil, "")
	flags.Int("width", 0, "")
	flags.Bool("no-color", false, "")
	flags.String("log-level", "", "")

	_ = flags.Set("path", "/data")
	_ = flags.Set("silent", "true")
	_ = flags.Set("find", "needle")
	_ = flags.Set("workers", "3")
	_ = flags.Set("max-depth", "5")
	_ = flags.Set("gitignore", "true")
	_ = flags.Set("extensions", "go,rs")
	_ = flags.Set("width", "80")
	_ = flags.Set("no-color", "true")
	_ = flags.Set("log-level", "DEBUG")

	settings, err := LoadSettingsWithFlags(flags)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if settings.Path != "/data" {
		t.Errorf("Expected path '/data', got '%s'", settings.Path)
	}
	if !settings.Silent {
		t.Error("Expected silent true")
	}
	if settings.Find != "needle" {
		t.Errorf("Expected find 'needle', got '%s'", settings.Find)
	}
	if settings.Workers != 3 {
		t.Errorf("Expected workers 3, got %d", settings.Workers)
	}
	if settings.MaxDepth != 5 {
		t.Errorf("Expected max depth 5, got %d", settings.MaxDepth)
	}
	if !settings.Gitignore {
		t.Error("Expected gitignore true")
	}
	if !slices.Equal(settings.Extensions, []string{"go", "rs"}) {
		t.Errorf("Expected extensions [go rs], got %v", settings.Extensions)
	}
	if settings.Width != 80 {
		t.Errorf("Expected width 80, got %d", settings.Width)
	}
	if !settings.NoColor {
		t.Error("Expected no-color true")
	}
	if settings.LogLevel != LogLevelDebug {
		t.Errorf("Expected log level normalized to 'debug', got '%s'", settings.LogLevel)
	}
}

func TestSettings_WithPath(t *testing.T) {
	original := Settings{Path: "/root", Find: "x", Extensions: []string{"md"}}

	derived := original.WithPath("/root/sub")

	if derived.Path != "/root/sub" {
		t.Errorf("Expected derived path '/root/sub', got '%s'", derived.Path)
	}
	if original.Path != "/root" {
		t.Errorf("Original path changed to '%s'", original.Path)
	}
	if derived.Find != "x" {
		t.Errorf("Expected derived find 'x', got '%s'", derived.Find)
	}

	derived.Extensions[0] = "txt"
	if original.Extensions[0] != "md" {
		t.Error("WithPath must not share the extensions slice")
	}
}

func TestSettings_Banner(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     []string
	}{
		{
			name:     "search enabled",
			settings: Settings{Path: "/src", Find: "todo"},
			want: []string{
				"Selected path is: /src",
				"Silent mode is off.",
				"Search system will track: 'todo'.",
			},
		},
		{
			name:     "search disabled and silent",
			settings: Settings{Path: "/src", Silent: true},
			want: []string{
				"Selected path is: /src",
				"Silent mode is on.",
				"Search system is desactivated.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Split(tt.settings.Banner(), "\n")
			if !slices.Equal(got, tt.want) {
				t.Errorf("Banner() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_EmptyPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	s := &Settings{}
	if err := Normalize(s); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	if s.Path != want {
		t.Errorf("Expected path '%s', got '%s'", want, s.Path)
	}
}

func TestNormalize_KeepsExplicitPath(t *testing.T) {
	s := &Settings{Path: "relative/dir"}
	if err := Normalize(s); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if s.Path != "relative/dir" {
		t.Errorf("Expected explicit path to be kept, got '%s'", s.Path)
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := ValidatePath(dir); err != nil {
		t.Errorf("Expected directory to be valid, got: %v", err)
	}
	if err := ValidatePath(file); err != nil {
		t.Errorf("Expected file to be valid, got: %v", err)
	}

	err := ValidatePath(filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrPathNotFound) {
		t.Errorf("Expected ErrPathNotFound, got: %v", err)
	}
}

// --- ValidateSettings Tests ---

func TestValidateSettings_Valid(t *testing.T) {
	s := &Settings{Workers: 1, LogLevel: LogLevelWarn}
	if err := ValidateSettings(s); err != nil {
		t.Errorf("Expected no error for valid settings, got: %v", err)
	}
}

func TestValidateSettings_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		settings    Settings
		errContains string
	}{
		{"zero workers", Settings{Workers: 0}, "workers"},
		{"negative workers", Settings{Workers: -2}, "workers"},
		{"negative depth", Settings{Workers: 1, MaxDepth: -1}, "max-depth"},
		{"negative width", Settings{Workers: 1, Width: -5}, "width"},
		{"unknown log level", Settings{Workers: 1, LogLevel: "verbose"}, "log-level"},
		{"extension with separator", Settings{Workers: 1, Extensions: []string{"a/b"}}, "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettings(&tt.settings)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing '%s', got: %v", tt.errContains, err)
			}
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := normalizeExtensions([]string{" .md", "", "txt ", "."})
	want := []string{"md", "txt"}
	if !slices.Equal(got, want) {
		t.Errorf("normalizeExtensions() = %v, want %v", got, want)
	}
}
