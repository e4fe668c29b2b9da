package chooser

import (
	"fmt"
	"math"
	"time"

	"github.td.teradata.com/sandbox/touch-ctl/internal/services/button"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/common"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/logging"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/touch"
)

// Orientation selects how the container is divided among buttons.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Item pairs a caller-owned identifier with a button label.  The identifier
// is never inspected; it is handed back when its button is selected.
type Item struct {
	ID    interface{}
	Label string
}

// Options tune a single Choose call.
type Options struct {
	Orientation Orientation

	// Container is the region the buttons divide.  Nil defaults to a
	// strip along the bottom of the screen for horizontal layouts and the
	// full screen for vertical ones.
	Container *geometry.Rect

	// Source supplies touch samples.  Nil opens the configured source,
	// which is then closed before Choose returns; a caller supplied
	// source is left open.
	Source touch.Source

	// Timeout bounds each wait for a sample.  Zero or less waits forever.
	Timeout time.Duration
}

const defStripHeight = 3

// Chooser renders buttons on a surface and resolves touch samples into the
// selected button.  One Choose call owns its button list from layout through
// hit test; nothing is shared across calls.
type Chooser struct {
	surface common.Surface
	log     *logging.Log
}

func New(surface common.Surface, log *logging.Log) *Chooser {
	if log == nil {
		log = logging.Discard()
	}
	return &Chooser{surface: surface, log: log}
}

// Choose presents one button per item and blocks until a touch lands on one
// of them, then returns that item's ID.  The matched button is redrawn in
// its active style before returning.
func (c *Chooser) Choose(items []Item, opts Options) (interface{}, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items to choose from", geometry.ErrInvalidArgument)
	}

	cols, rows := c.surface.Size()
	container := c.container(opts, cols, rows)

	buttons := make([]*button.Button, len(items))
	for i, item := range items {
		buttons[i] = button.New(item.ID, item.Label)
	}

	var err error
	if opts.Orientation == Vertical {
		err = button.LayoutVertical(buttons, container)
	} else {
		err = button.LayoutHorizontal(buttons, container)
	}
	if err != nil {
		return nil, err
	}

	source := opts.Source
	owned := false
	if source == nil {
		if source, err = touch.Open(c.log); err != nil {
			return nil, err
		}
		owned = true
	}
	normalizer := touch.NewNormalizer(source, c.log)
	defer func() {
		if owned {
			_ = normalizer.Close()
		} else {
			normalizer.Stop()
		}
	}()

	for _, b := range buttons {
		c.draw(b)
	}
	if err := c.surface.Present(); err != nil {
		return nil, err
	}
	c.log.Debugf("Presented %d buttons in %+v, waiting for touch", len(buttons), container)

	for {
		sample, err := normalizer.NextSample(opts.Timeout)
		if err != nil {
			return nil, err
		}
		if sample.Phase == touch.Up {
			// Releases never select.
			continue
		}

		x := int(math.Round(sample.X * float64(cols)))
		y := int(math.Round(sample.Y * float64(rows)))
		b := match(buttons, x, y)
		if b == nil {
			c.log.Debugf("Touch at %d,%d missed every button", x, y)
			continue
		}

		c.log.Debugf("Touch at %d,%d selected button [%v]", x, y, b.ID)
		b.State = button.Active
		c.draw(b)
		if err := c.surface.Present(); err != nil {
			return nil, err
		}
		return b.ID, nil
	}
}

// ChooseLabels is the convenience form where each label is its own id.
func (c *Chooser) ChooseLabels(labels []string, opts Options) (string, error) {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{ID: label, Label: label}
	}
	id, err := c.Choose(items, opts)
	if err != nil {
		return "", err
	}
	return id.(string), nil
}

func (c *Chooser) container(opts Options, cols int, rows int) geometry.Rect {
	if opts.Container != nil {
		return *opts.Container
	}
	if opts.Orientation == Vertical {
		return geometry.Rect{X: 1, Y: 1, Width: cols - 1, Height: rows - 1}
	}
	return geometry.Rect{X: 1, Y: rows - defStripHeight, Width: cols - 1, Height: defStripHeight}
}

func (c *Chooser) draw(b *button.Button) {
	style := b.Style()
	c.surface.Fill(b.Rect, style)

	label := b.Label
	if len(label) > b.Rect.Width {
		label = label[:b.Rect.Width]
	}
	col := b.Rect.X + (b.Rect.Width-len(label))/2
	row := b.Rect.Y + b.Rect.Height/2
	c.surface.PrintAt(style.Paint(label), col, row)
}

// match returns the first button whose rectangle contains the point.  Input
// order decides when a boundary cell falls inside two buttons.
func match(buttons []*button.Button, x int, y int) *button.Button {
	for _, b := range buttons {
		if b.Rect.Contains(x, y) {
			return b
		}
	}
	return nil
}
