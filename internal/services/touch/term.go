package touch

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/term"
	xterm "golang.org/x/term"

	"github.td.teradata.com/sandbox/touch-ctl/internal/config"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/logging"
)

// TermSource decodes mouse reports from the controlling terminal.  Touch
// capable consoles report contacts the same way a mouse press is reported
// once reporting is switched on (display.EnableMouse); reports arrive SGR
// encoded (ESC [ < btn ; col ; row M|m) or X10 encoded (ESC [ M cb cx cy).
// Coordinates are one-based character cells, so the extent is the terminal
// size.
type TermSource struct {
	tty  *term.Term
	in   *bufio.Reader
	cols int
	rows int
	log  *logging.Log
}

func NewTermSource(log *logging.Log) (*TermSource, error) {
	t, err := term.Open("/dev/tty")
	if err != nil {
		return nil, err
	}
	if err := term.RawMode(t); err != nil {
		_ = t.Close()
		return nil, err
	}

	if log == nil {
		log = logging.Discard()
	}
	s := &TermSource{tty: t, in: bufio.NewReader(t), log: log}
	if w, h, e := xterm.GetSize(int(os.Stdin.Fd())); e == nil {
		s.cols = w
		s.rows = h
	} else if config.CLIConfig != nil && config.CLIConfig.Terminal != nil {
		s.cols = config.CLIConfig.Terminal.Width
		s.rows = config.CLIConfig.Terminal.Height
		log.Warnf("Terminal refused a size query, using configured %dx%d: %v", s.cols, s.rows, e)
	} else {
		_ = t.Restore()
		_ = t.Close()
		return nil, e
	}
	return s, nil
}

func (s *TermSource) ReadSample() (RawSample, error) {
	for {
		col, row, phase, ok, err := readReport(s.in)
		if err != nil {
			return RawSample{}, err
		}
		if !ok {
			// Key presses and stray bytes share the stream; skip them.
			continue
		}
		return RawSample{X: col, Y: row, ExtentX: s.cols, ExtentY: s.rows, Phase: phase}, nil
	}
}

func (s *TermSource) Close() error {
	_ = s.tty.Restore()
	return s.tty.Close()
}

// readReport consumes one token from the input stream.  ok is false when the
// token was not a mouse report.
func readReport(in *bufio.Reader) (col int, row int, phase Phase, ok bool, err error) {
	b, err := in.ReadByte()
	if err != nil {
		return 0, 0, Down, false, err
	}
	if b != 0x1b {
		return 0, 0, Down, false, nil
	}
	if b, err = in.ReadByte(); err != nil {
		return 0, 0, Down, false, err
	}
	if b != '[' {
		return 0, 0, Down, false, nil
	}
	if b, err = in.ReadByte(); err != nil {
		return 0, 0, Down, false, err
	}

	switch b {
	case 'M':
		// X10: three payload bytes offset by 32.
		buf := make([]byte, 3)
		if _, err = io.ReadFull(in, buf); err != nil {
			return 0, 0, Down, false, err
		}
		cb := int(buf[0]) - 32
		col = int(buf[1]) - 32
		row = int(buf[2]) - 32
		return col, row, x10Phase(cb), true, nil

	case '<':
		var fields [3]int
		for i := 0; i < 3; i++ {
			v := 0
			for {
				if b, err = in.ReadByte(); err != nil {
					return 0, 0, Down, false, err
				}
				if b >= '0' && b <= '9' {
					v = v*10 + int(b-'0')
					continue
				}
				break
			}
			fields[i] = v
			if i < 2 && b != ';' {
				return 0, 0, Down, false, nil
			}
		}
		if b != 'M' && b != 'm' {
			return 0, 0, Down, false, nil
		}
		phase = Down
		if b == 'm' {
			phase = Up
		} else if fields[0]&32 != 0 {
			phase = Move
		}
		return fields[1], fields[2], phase, true, nil
	}
	return 0, 0, Down, false, nil
}

func x10Phase(cb int) Phase {
	if cb&3 == 3 {
		return Up
	}
	if cb&32 != 0 {
		return Move
	}
	return Down
}
