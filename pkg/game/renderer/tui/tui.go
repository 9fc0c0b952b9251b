package tui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"wavecollapse/pkg/engine/input"
	"wavecollapse/pkg/engine/terminal"
	"wavecollapse/pkg/game/renderer"
	"wavecollapse/pkg/game/state"
)

// Lines printed around the grid
const (
	headerRows = 2                     // status, blank
	statusRows = 3                     // blank, timings, paused
	paneRows   = state.MaxMessages + 3 // blank, rule, messages, rule
	helpRows   = 1

	ReservedRows = headerRows + statusRows + paneRows + helpRows
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer

	colorAction      color.Style
	colorActionShort color.Style
	colorDone        color.Style
	colorPaused      color.Style
	colorSubtle      color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer writing to stdout
func New() *TUIRenderer {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a TUI renderer writing to w
func NewWithWriter(w io.Writer) *TUIRenderer {
	return &TUIRenderer{out: w}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDone = color.Style{color.FgGreen, color.OpBold}
	t.colorPaused = color.Style{color.FgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// Clear moves the cursor home and clears the screen
func (t *TUIRenderer) Clear() {
	fmt.Fprint(t.out, "\033[H\033[2J")
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	cols, rows = terminal.GridSize(ReservedRows)
	return rows, cols
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// RenderFrame renders a complete frame
func (t *TUIRenderer) RenderFrame(f state.Frame) {
	t.printHeader(f)
	t.printGrid(f)
	t.printStatusBar(f)
	t.printMessagesPane(f)
	t.printPossibleActions()
}

func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

func (t *TUIRenderer) printHeader(f state.Frame) {
	status := t.colorAction.Sprint(gotext.Get("STATUS_GENERATING"))
	if f.Complete {
		status = t.colorDone.Sprint(gotext.Get("STATUS_GENERATED"))
	}
	fmt.Fprintf(t.out, "%s %5.1f%%  %s\n\n", status, f.Percent,
		t.colorSubtle.Sprintf("seed %d  run %s", f.Seed, shortID(f.RunID.String())))
}

// printGrid prints the top row first so that up points up on screen
func (t *TUIRenderer) printGrid(f state.Frame) {
	var b strings.Builder
	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			b.WriteString(t.renderCell(f, x, y))
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(t.out, b.String())
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(f state.Frame, x, y int) string {
	if tile := f.Matrix.At(x, y); tile != nil {
		c := renderer.TileColor(tile.ID())
		return color.RGB(c.R, c.G, c.B).Sprint(string(renderer.TileGlyph(tile.ID())))
	}

	e := 0
	if x < len(f.Entropy) && y < len(f.Entropy[x]) {
		e = f.Entropy[x][y]
	}
	c := renderer.EntropyColor(e, f.MaxEntropy)
	return color.RGB(c.R, c.G, c.B).Sprint(string(renderer.EntropyGlyph(e)))
}

func (t *TUIRenderer) printStatusBar(f state.Frame) {
	fmt.Fprintln(t.out)
	line := fmt.Sprintf("%s %s", gotext.Get("ELAPSED"), f.Elapsed.Round(time.Millisecond))
	if f.LastStep > 0 {
		line += fmt.Sprintf("  %s %s", gotext.Get("LAST_ITERATION"), f.LastStep.Round(time.Microsecond))
	}
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(line))
	if f.Paused {
		fmt.Fprintln(t.out, t.colorPaused.Sprint(gotext.Get("PAUSED")))
	}
}

func (t *TUIRenderer) printMessagesPane(f state.Frame) {
	width, _ := terminal.GetSize()
	width = max(width, f.Width)

	label := " " + gotext.Get("MESSAGES") + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(width-sideLen-labelLen, 1))

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(leftDashes+label+rightDashes))

	if len(f.Messages) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("  "+gotext.Get("NO_MESSAGES")))
	} else {
		for _, msg := range f.Messages {
			fmt.Fprintf(t.out, "  %s\n", msg)
		}
	}

	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", width)))
}

// printPossibleActions lists every control with the code currently bound to it
func (t *TUIRenderer) printPossibleActions() {
	parts := make([]string, 0, len(input.Controls))
	for _, k := range input.Controls {
		code := input.DisplayCode(k)
		if code == "" {
			continue
		}
		parts = append(parts, t.colorActionShort.Sprint(code)+" "+t.colorAction.Sprint(k.String()))
	}
	fmt.Fprintln(t.out, strings.Join(parts, "  "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
