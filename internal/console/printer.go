package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sha1n/kwscan/internal/config"
	"github.com/sha1n/kwscan/internal/scan"
	"golang.org/x/term"
)

// Printer writes progress notices and plain lines to a console.
// It implements scan.Observer and is safe for concurrent use.
type Printer struct {
	writer      io.Writer
	mutex       sync.Mutex
	colorOutput bool
	dir         *color.Color
	file        *color.Color
	alert       *color.Color
}

// NewPrinter creates a Printer writing to writer.
// Colors are used only when writer is a terminal and neither noColor nor NO_COLOR is set.
func NewPrinter(writer io.Writer, noColor bool) *Printer {
	if writer == nil {
		writer = io.Discard
	}

	p := &Printer{
		writer:      writer,
		colorOutput: !noColor && isTerminal(writer),
		dir:         color.New(color.FgMagenta),
		file:        color.New(color.FgCyan),
		alert:       color.New(color.FgRed),
	}

	for _, c := range []*color.Color{p.dir, p.file, p.alert} {
		if p.colorOutput {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// isTerminal reports whether w is a file attached to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor && (f == os.Stdout || f == os.Stderr) {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Notify prints a notice in the color of its kind.
func (p *Printer) Notify(n scan.Notice) {
	var c *color.Color
	switch n.Kind {
	case scan.NoticeDir:
		c = p.dir
	case scan.NoticeFile:
		c = p.file
	default:
		c = p.alert
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	_, _ = c.Fprintln(p.writer, n.Message())
}

// Println prints an uncolored line.
func (p *Printer) Println(line string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	_, _ = fmt.Fprintln(p.writer, line)
}

// LineWidth returns the report width for the given settings.
// An explicit width wins; otherwise the width of the terminal behind f is used,
// falling back to config.DefaultLineWidth when f is not a terminal.
func LineWidth(settings *config.Settings, f *os.File) int {
	if settings != nil && settings.Width > 0 {
		return settings.Width
	}
	if f == nil {
		return config.DefaultLineWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return config.DefaultLineWidth
	}
	return width
}
