package terminal

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GridSize returns the largest grid that fits the terminal when every cell
// takes one column and reservedRows lines are kept for status output.
func GridSize(reservedRows int) (width, height int) {
	w, h := GetSize()
	return FitGrid(w, h, reservedRows)
}

// FitGrid derives a grid size from a screen size, never below 1x1.
func FitGrid(screenWidth, screenHeight, reservedRows int) (width, height int) {
	width = screenWidth
	height = screenHeight - reservedRows
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// crlfWriter turns bare line feeds into CR LF for terminals in raw mode
type crlfWriter struct {
	w io.Writer
}

// RawWriter wraps w so output keeps its line layout while the terminal is in raw mode
func RawWriter(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
