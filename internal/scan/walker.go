package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/sha1n/kwscan/internal/domain"
)

// Search scans the configured root path.
// A directory root is walked recursively; a regular file root is filtered and scanned on its own.
// The only error returned is the context error when the search was cancelled,
// in which case the result holds the files matched before cancellation.
func (s *Scanner) Search(ctx context.Context) (domain.SearchResult, error) {
	root := s.settings.Path

	var result domain.SearchResult
	if info, err := os.Stat(root); err == nil && info.Mode().IsRegular() {
		result = s.visitFile(ctx, root)
	} else {
		result = s.Walk(ctx, root)
	}

	return result, ctx.Err()
}

// Walk recursively scans a directory.
// Directories that cannot be listed contribute an empty result.
func (s *Scanner) Walk(ctx context.Context, dir string) domain.SearchResult {
	return s.walk(ctx, dir, 0)
}

func (s *Scanner) walk(ctx context.Context, dir string, depth int) domain.SearchResult {
	s.notify(Notice{Kind: NoticeDir, Path: dir})
	s.stats.dirs.Add(1)

	s.acquire()
	entries, err := os.ReadDir(dir)
	s.release()

	if err != nil {
		slog.Debug("Skipping unreadable directory", "path", dir, "error", err)
		return domain.SearchResult{}
	}

	if s.sem == nil {
		var acc domain.SearchResult
		for _, entry := range entries {
			if ctx.Err() != nil {
				break
			}
			acc.Merge(s.visit(ctx, dir, entry, depth))
		}
		return acc
	}

	// Each entry writes to its own slot so the merge order matches the sequential walk
	slots := make([]domain.SearchResult, len(entries))
	var wg sync.WaitGroup
	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, entry fs.DirEntry) {
			defer wg.Done()
			slots[i] = s.visit(ctx, dir, entry, depth)
		}(i, entry)
	}
	wg.Wait()

	var acc domain.SearchResult
	for _, slot := range slots {
		acc.Merge(slot)
	}
	return acc
}

// visit dispatches a single directory entry.
// Symlinks, devices, sockets and pipes are ignored.
func (s *Scanner) visit(ctx context.Context, dir string, entry fs.DirEntry, depth int) domain.SearchResult {
	path := filepath.Join(dir, entry.Name())

	switch {
	case entry.IsDir():
		if s.isIgnored(path, true) {
			return domain.SearchResult{}
		}
		if s.settings.MaxDepth > 0 && depth >= s.settings.MaxDepth {
			slog.Debug("Max depth reached", "path", path, "max_depth", s.settings.MaxDepth)
			return domain.SearchResult{}
		}
		return s.walk(ctx, path, depth+1)

	case entry.Type().IsRegular():
		if s.isIgnored(path, false) {
			return domain.SearchResult{}
		}
		return s.visitFile(ctx, path)

	default:
		return domain.SearchResult{}
	}
}

// visitFile applies the extension filter and scans eligible files
func (s *Scanner) visitFile(ctx context.Context, path string) domain.SearchResult {
	if !s.filter.IsEligible(path) {
		s.stats.skipped.Add(1)
		s.notify(Notice{Kind: NoticeSkipped, Path: path, Ext: GetFileExtension(path)})
		return domain.SearchResult{}
	}
	return s.ScanFile(ctx, path)
}

func (s *Scanner) isIgnored(path string, isDir bool) bool {
	return s.ignore != nil && s.ignore.Match(path, isDir)
}
