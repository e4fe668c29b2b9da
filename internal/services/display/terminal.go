// https://www.lihaoyi.com/post/BuildyourownCommandLinewithANSIescapecodes.html#colors
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	xterm "golang.org/x/term"

	"github.td.teradata.com/sandbox/touch-ctl/internal/config"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
)

const (
	Black   = "[30m"
	Red     = "[31m"
	Green   = "[32m"
	Yellow  = "[33m"
	Blue    = "[34m"
	Magenta = "[35m"
	Cyan    = "[36m"
	White   = "[37m"

	Grey          = "[90m"
	BrightRed     = "[91m"
	BrightGreen   = "[92m"
	BrightYellow  = "[93m"
	BrightBlue    = "[94m"
	BrightMagenta = "[95m"
	BrightCyan    = "[96m"
	BrightWhite   = "[97m"

	BGBlack   = "[40m"
	BGRed     = "[41m"
	BGGreen   = "[42m"
	BGYellow  = "[43m"
	BGBlue    = "[44m"
	BGMagenta = "[45m"
	BGCyan    = "[46m"
	BGWhite   = "[47m"

	BGGrey          = "[100m"
	BGBrightRed     = "[101m"
	BGBrightGreen   = "[102m"
	BGBrightYellow  = "[103m"
	BGBrightBlue    = "[104m"
	BGBrightMagenta = "[105m"
	BGBrightCyan    = "[106m"
	BGBrightWhite   = "[107m"

	Bold      = "[1m"
	Underline = "[4m"
	Reset     = "[0m"

	Bell = "\a"

	ClearDown   = "[0J" // clears from cursor until end of screen
	ClearUp     = "[1J" // clears from cursor to beginning of screen
	ClearScreen = "[2J" // clears entire screen

	ClearEnd   = "[0K" // clears from cursor to end of line
	ClearStart = "[1K" // clears from cursor to start of line
	ClearLine  = "[2K" // clears entire line

	SetColumn   = "[%dG"    // moves cursor to column n
	SetPosition = "[%d;%dH" // moves cursor to row n column m

	// Show / Hide cursor
	Show = "[?25h"
	Hide = "[?25l"

	// Mouse / touch reporting.  X10-style press reports plus SGR encoding
	// so coordinates beyond column 223 survive the round trip.
	MouseOn  = "[?1000h[?1006h"
	MouseOff = "[?1006l[?1000l"
)

var rex = regexp.MustCompile("\\[[0-9]{1,3}m")

// Style is the pair of SGR sequences a region is painted with.
type Style struct {
	Fg string
	Bg string
}

// Paint wraps text in the style's colour codes.
func (s Style) Paint(text string) string {
	return s.Fg + s.Bg + text + Reset
}

// Default button styles.
var (
	ButtonNormal = Style{Fg: BrightWhite, Bg: BGBlue}
	ButtonActive = Style{Fg: Black, Bg: BGBrightCyan}
)

// Terminal drives a character terminal through ANSI escape sequences and
// presents the draw surface the selection controller needs: fill a
// rectangle, write text at a position, flush.  Output is buffered until
// Present so a full redraw reaches the terminal in one write.
type Terminal struct {
	fd    int
	out   *bufio.Writer
	cols  int
	rows  int
	col   int
	row   int
	state *xterm.State
}

func New() (*Terminal, error) {
	t := newTerminal(os.Stdout, 0, 0)
	t.fd = int(os.Stdin.Fd())

	if w, h, e := xterm.GetSize(t.fd); e == nil {
		t.cols = w
		t.rows = h
	} else if config.CLIConfig != nil && config.CLIConfig.Terminal != nil {
		t.cols = config.CLIConfig.Terminal.Width
		t.rows = config.CLIConfig.Terminal.Height
	} else {
		return nil, e
	}
	return t, nil
}

func newTerminal(out io.Writer, cols int, rows int) *Terminal {
	return &Terminal{
		fd:   -1,
		out:  bufio.NewWriter(out),
		cols: cols,
		rows: rows,
	}
}

// Terminal mode hooks.  Callers bracket a selection with RawMode/EnableMouse
// before and DisableMouse/Restore after; the selection loop itself never
// touches process-wide terminal state.
func (t *Terminal) RawMode() error {
	if s, e := xterm.MakeRaw(t.fd); e != nil {
		return e
	} else {
		t.state = s
	}
	return nil
}
func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	return xterm.Restore(t.fd, t.state)
}
func (t *Terminal) EnableMouse() {
	fmt.Fprint(t.out, MouseOn)
	_ = t.out.Flush()
}
func (t *Terminal) DisableMouse() {
	fmt.Fprint(t.out, MouseOff)
	_ = t.out.Flush()
}

// Screen positioning
func (t *Terminal) At(col int, row int) bool {
	str := Bell
	if col >= 1 && col <= t.cols && row >= 1 && row <= t.rows {
		str = fmt.Sprintf(SetPosition, row, col)
		t.col = col
		t.row = row
	}
	fmt.Fprint(t.out, str)
	return str != Bell
}
func (t *Terminal) Start() {
	fmt.Fprintf(t.out, SetColumn, 1)
	t.col = 1
}
func (t *Terminal) Home() {
	fmt.Fprintf(t.out, SetPosition, 1, 1)
	t.col = 1
	t.row = 1
}

// Display text
func (t *Terminal) PrintAt(text string, col int, row int) bool {
	ok := t.At(col, row)
	if ok {
		t.Print(text)
	}
	return ok
}
func (t *Terminal) Print(text string) {
	bs := []byte(StripFormatting(text))
	if t.col+len(bs) > t.cols+1 {
		keep := t.cols + 1 - t.col
		if keep < 0 {
			keep = 0
		}
		bs = bs[:keep]
		// Re-painting clipped colour text would need a scan; clipped
		// output is written bare instead.
		text = string(bs)
	}
	fmt.Fprint(t.out, text)
	t.col += len(bs)
}

// Fill paints a rectangle, one row at a time, in the style's background.
func (t *Terminal) Fill(r geometry.Rect, s Style) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	band := s.Bg + strings.Repeat(" ", r.Width) + Reset
	for row := r.Y; row < r.Y+r.Height; row++ {
		if ok := t.At(r.X, row); ok {
			fmt.Fprint(t.out, band)
			t.col += r.Width
		}
	}
}

// Present flushes everything drawn since the last call to the terminal.
func (t *Terminal) Present() error {
	return t.out.Flush()
}

// Screen control
func (t *Terminal) Bell() {
	fmt.Fprint(t.out, Bell)
}
func (t *Terminal) Cll() {
	fmt.Fprint(t.out, ClearLine)
	t.Start()
}
func (t *Terminal) Cls() {
	fmt.Fprint(t.out, ClearScreen)
	t.Home()
}
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, Hide)
}
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, Show)
}

func (t *Terminal) Size() (cols int, rows int) {
	return t.cols, t.rows
}
func (t *Terminal) Cols() int {
	return t.cols
}
func (t *Terminal) Rows() int {
	return t.rows
}

// StripFormatting removes colour codes so text length can be measured.
func StripFormatting(text string) string {
	return string(rex.ReplaceAll([]byte(text), []byte{}))
}
