package scan

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/sha1n/kwscan/internal/config"
	"github.com/sha1n/kwscan/internal/domain"
)

// GitignoreFilename is the name of the ignore file honored when gitignore support is enabled
const GitignoreFilename = ".gitignore"

// ErrNotText indicates the file content is not valid UTF-8 text
var ErrNotText = errors.New("stream did not contain valid UTF-8")

// Stats is a snapshot of the scanner counters.
type Stats struct {
	Dirs    int64
	Files   int64
	Skipped int64
	Errors  int64
}

type counters struct {
	dirs    atomic.Int64
	files   atomic.Int64
	skipped atomic.Int64
	errors  atomic.Int64
}

// Scanner walks a directory tree and counts keyword occurrences in eligible files.
// A Scanner is created per search and must not be shared between searches.
type Scanner struct {
	settings *config.Settings
	filter   *ExtensionFilter
	observer Observer
	ignore   gitignore.IgnoreMatcher
	sem      chan struct{}
	stats    counters
}

// NewScanner creates a scanner for the given settings.
// Notices are sent to observer unless settings.Silent is set; a nil observer discards them.
func NewScanner(settings *config.Settings, observer Observer) *Scanner {
	if observer == nil {
		observer = Discard
	}

	s := &Scanner{
		settings: settings,
		filter:   NewExtensionFilterWith(settings.Extensions),
		observer: observer,
	}

	if settings.Workers > 1 {
		s.sem = make(chan struct{}, settings.Workers)
	}

	if settings.Gitignore {
		s.ignore = loadGitignore(settings.Path)
	}

	return s
}

// loadGitignore loads the ignore file at the root of the search, if any
func loadGitignore(root string) gitignore.IgnoreMatcher {
	path := filepath.Join(root, GitignoreFilename)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	matcher, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		slog.Warn("Could not parse ignore file", "path", path, "error", err)
		return nil
	}
	return matcher
}

// Stats returns a snapshot of the counters collected so far.
func (s *Scanner) Stats() Stats {
	return Stats{
		Dirs:    s.stats.dirs.Load(),
		Files:   s.stats.files.Load(),
		Skipped: s.stats.skipped.Load(),
		Errors:  s.stats.errors.Load(),
	}
}

// ScanFile reads a single file and counts occurrences of the configured keyword.
// Read and decode failures produce an empty result.
func (s *Scanner) ScanFile(ctx context.Context, path string) domain.SearchResult {
	if ctx.Err() != nil {
		return domain.SearchResult{}
	}

	s.notify(Notice{Kind: NoticeFile, Path: path})
	s.stats.files.Add(1)

	s.acquire()
	content, err := os.ReadFile(path)
	s.release()

	if err == nil && !utf8.Valid(content) {
		err = ErrNotText
	}
	if err != nil {
		s.stats.errors.Add(1)
		s.notify(Notice{Kind: NoticeError, Path: path, Err: err})
		return domain.SearchResult{}
	}

	record := domain.FileRecord{Path: path}
	if s.settings.SearchEnabled() {
		record.Occurrences = CountOccurrences(string(content), s.settings.Find)
	}

	return domain.FromRecord(record)
}

// CountOccurrences returns the number of non-overlapping instances of term in content,
// scanning left to right. An empty term never matches.
func CountOccurrences(content, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(content, term)
}

func (s *Scanner) notify(n Notice) {
	if s.settings.Silent {
		return
	}
	s.observer.Notify(n)
}

// acquire limits the number of concurrent filesystem operations.
// It is a no-op for sequential scanners.
func (s *Scanner) acquire() {
	if s.sem != nil {
		s.sem <- struct{}{}
	}
}

func (s *Scanner) release() {
	if s.sem != nil {
		<-s.sem
	}
}
