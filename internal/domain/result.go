package domain

// FileRecord is the outcome of scanning a single file.
// It is created once per scanned file and never modified afterwards.
type FileRecord struct {
	// Path is the file path as it was visited, rooted at the search path.
	// Example: "/home/me/notes/todo.md"
	Path string `json:"path"`

	// Occurrences is the number of non-overlapping matches of the keyword.
	Occurrences int `json:"occurrences"`
}

// SearchResult is an ordered collection of matching files.
// Only files with at least one occurrence are ever stored.
type SearchResult struct {
	Files []FileRecord `json:"files"`
}

// FromRecord wraps a single record into a result.
// Records without occurrences produce an empty result.
func FromRecord(record FileRecord) SearchResult {
	if record.Occurrences <= 0 {
		return SearchResult{}
	}
	return SearchResult{Files: []FileRecord{record}}
}

// Merge returns the concatenation of a and b, a's files first.
// Neither argument is modified.
func Merge(a, b SearchResult) SearchResult {
	if len(a.Files)+len(b.Files) == 0 {
		return SearchResult{}
	}
	files := make([]FileRecord, 0, len(a.Files)+len(b.Files))
	files = append(files, a.Files...)
	files = append(files, b.Files...)
	return SearchResult{Files: files}
}

// Merge appends other's files to r in place.
// Used by the walker on its own accumulator.
func (r *SearchResult) Merge(other SearchResult) {
	r.Files = append(r.Files, other.Files...)
}

// TotalOccurrences returns the sum of occurrences across all files.
func (r SearchResult) TotalOccurrences() int {
	total := 0
	for _, f := range r.Files {
		total += f.Occurrences
	}
	return total
}

// MatchingFileCount returns the number of files with at least one occurrence.
func (r SearchResult) MatchingFileCount() int {
	return len(r.Files)
}

// IsEmpty reports whether no file matched.
func (r SearchResult) IsEmpty() bool {
	return len(r.Files) == 0
}
