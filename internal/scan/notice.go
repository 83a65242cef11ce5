package scan

import (
	"fmt"
	"path/filepath"
)

// NoticeKind categorizes a progress notice
type NoticeKind int

// Notice kinds emitted during a search
const (
	NoticeDir NoticeKind = iota
	NoticeFile
	NoticeSkipped
	NoticeError
)

// String returns a short name for the kind
func (k NoticeKind) String() string {
	switch k {
	case NoticeDir:
		return "dir"
	case NoticeFile:
		return "file"
	case NoticeSkipped:
		return "skipped"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a progress event emitted while walking and scanning.
type Notice struct {
	Kind NoticeKind
	Path string
	// Ext is set for NoticeSkipped
	Ext string
	// Err is set for NoticeError
	Err error
}

// Message renders the notice as human readable text.
func (n Notice) Message() string {
	switch n.Kind {
	case NoticeDir:
		return fmt.Sprintf("Searching in dir: %s", n.Path)
	case NoticeFile:
		return fmt.Sprintf("Searching in file: %s", n.Path)
	case NoticeSkipped:
		return fmt.Sprintf("Skipped file — bad extension: '%s: %s'", filepath.Base(n.Path), n.Ext)
	case NoticeError:
		return fmt.Sprintf("Got an error reading the file: %s\nError: %v", n.Path, n.Err)
	default:
		return n.Path
	}
}

// Observer receives progress notices.
// Implementations must be safe for concurrent use when the scanner runs with more than one worker.
type Observer interface {
	Notify(Notice)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Notice)

// Notify calls f(n)
func (f ObserverFunc) Notify(n Notice) {
	f(n)
}

type discardObserver struct{}

func (discardObserver) Notify(Notice) {}

// Discard is an Observer that drops every notice
var Discard Observer = discardObserver{}
