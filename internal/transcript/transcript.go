// Package transcript writes command results to the console and the output file.
package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/muesli/termenv"

	"github.com/kula-app/parking-lot/internal/command"
)

// Writer fans each result out to a styled console sink and a plain file sink
type Writer struct {
	console io.Writer
	file    io.Writer
	color   bool

	okStyle       lipgloss.Style
	rejectedStyle lipgloss.Style
	invalidStyle  lipgloss.Style
}

// New creates a writer. Either sink may be nil.
// Color is forced on or off by the caller; terminal detection happens there.
func New(console, file io.Writer, color bool) *Writer {
	if console == nil {
		console = io.Discard
	}
	if file == nil {
		file = io.Discard
	}

	r := lipgloss.NewRenderer(console)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Writer{
		console:       console,
		file:          file,
		color:         color,
		okStyle:       r.NewStyle().Foreground(lipgloss.Color("34")),
		rejectedStyle: r.NewStyle().Foreground(lipgloss.Color("160")),
		invalidStyle:  r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Render returns the console form of the result
func (w *Writer) Render(res command.Result) string {
	if !w.color {
		return res.Message
	}
	switch res.Outcome {
	case command.OutcomeOK:
		return w.okStyle.Render(res.Message)
	case command.OutcomeRejected:
		return w.rejectedStyle.Render(res.Message)
	default:
		return w.invalidStyle.Render(res.Message)
	}
}

// Write records the result on both sinks
func (w *Writer) Write(res command.Result) error {
	if _, err := fmt.Fprintln(w.console, w.Render(res)); err != nil {
		return fmt.Errorf("failed to write result to console: %w", err)
	}
	if _, err := fmt.Fprintln(w.file, res.Message); err != nil {
		return fmt.Errorf("failed to write result to transcript file: %w", err)
	}
	return nil
}

// OpenFile creates (or truncates) the transcript file name inside dir.
// The name cannot escape dir, even through ".." or symlinks.
func OpenFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path, err := securejoin.SecureJoin(dir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output file %s in %s: %w", name, dir, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return f, nil
}
