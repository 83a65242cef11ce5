package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sha1n/kwscan/internal/config"
	"github.com/sha1n/kwscan/internal/domain"
)

// countWidth is the minimum width of the occurrence count column
const countWidth = 3

// Pluralize returns "time" for exactly one occurrence and "times" otherwise.
func Pluralize(count int) string {
	if count == 1 {
		return "time"
	}
	return "times"
}

// Format renders the aggregate report for a search.
// The output is framed by rules of width '=' characters and has no trailing newline.
// A non-positive width falls back to config.DefaultLineWidth.
func Format(result domain.SearchResult, settings *config.Settings, width int) string {
	if width <= 0 {
		width = config.DefaultLineWidth
	}
	rule := strings.Repeat("=", width)

	lines := make([]string, 0, len(result.Files)+3)
	lines = append(lines, rule)
	for _, file := range result.Files {
		lines = append(lines, formatRecord(file))
	}
	lines = append(lines, rule)

	if settings != nil && settings.SearchEnabled() {
		total := result.TotalOccurrences()
		lines = append(lines, fmt.Sprintf("Keyword: '%s' found %d %s in %d files",
			settings.Find, total, Pluralize(total), result.MatchingFileCount()))
	}

	return strings.Join(lines, "\n")
}

func formatRecord(file domain.FileRecord) string {
	count := strconv.Itoa(file.Occurrences)
	pad := strings.Repeat(" ", max(0, countWidth-len(count)))
	return fmt.Sprintf("found: %s%s %s in: %s", count, pad, Pluralize(file.Occurrences), file.Path)
}
