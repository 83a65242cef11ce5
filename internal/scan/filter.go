package scan

import (
	"path/filepath"
	"strings"
)

// HandledExtensions contains the extensions admitted for scanning by default.
// Matching is case-sensitive and does not include the leading dot.
var HandledExtensions = []string{
	// Text and logs
	"txt", "md", "log",

	// Python
	"py", "pyw",

	// C family and Rust
	"c", "cpp", "cs", "rs",

	// Windows scripts
	"bat", "cmd",

	// Configuration
	"toml",
}

// ExtensionFilter determines which files are eligible for scanning.
type ExtensionFilter struct {
	allowed map[string]struct{}
}

// NewExtensionFilter creates an ExtensionFilter with the default extensions.
func NewExtensionFilter() *ExtensionFilter {
	return NewExtensionFilterWith(HandledExtensions)
}

// NewExtensionFilterWith creates an ExtensionFilter with custom extensions.
// Leading dots are ignored. An empty list falls back to the defaults.
func NewExtensionFilterWith(extensions []string) *ExtensionFilter {
	if len(extensions) == 0 {
		extensions = HandledExtensions
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	return &ExtensionFilter{allowed: allowed}
}

// IsEligible returns true if the file extension of path is allowed.
// Files without an extension are never eligible.
func (f *ExtensionFilter) IsEligible(path string) bool {
	ext := GetFileExtension(path)
	if ext == "" {
		return false
	}
	_, ok := f.allowed[ext]
	return ok
}

// Extensions returns the number of allowed extensions.
func (f *ExtensionFilter) Extensions() int {
	return len(f.allowed)
}

// GetFileExtension returns the file extension without the leading dot.
// Returns empty string if no extension.
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimPrefix(ext, ".")
}
