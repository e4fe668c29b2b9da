package button

import (
	"fmt"

	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
)

// The layout engine divides the container's varying axis into one slot per
// button with geometry.Partition.  The container span is padded by one unit
// before partitioning and each button surrenders one unit of its slot, which
// leaves a single blank row or column between neighbours while the slots
// still tile the whole span.

// LayoutHorizontal assigns each button a rectangle in a left-to-right strip
// across the container.  Rectangles are written in place; calling it again
// with the same container yields identical rectangles.
func LayoutHorizontal(buttons []*Button, container geometry.Rect) error {
	if err := checkLayout(buttons, container); err != nil {
		return err
	}

	widths, err := geometry.Partition(container.Width+1, len(buttons))
	if err != nil {
		return err
	}

	x := container.X
	for i, b := range buttons {
		b.Rect = geometry.Rect{
			X:      x,
			Y:      container.Y,
			Width:  widths[i] - 1,
			Height: container.Height,
		}
		x += widths[i]
	}
	return nil
}

// LayoutVertical stacks the buttons top to bottom, each taking the full
// container width.
func LayoutVertical(buttons []*Button, container geometry.Rect) error {
	if err := checkLayout(buttons, container); err != nil {
		return err
	}

	heights, err := geometry.Partition(container.Height+1, len(buttons))
	if err != nil {
		return err
	}

	y := container.Y
	for i, b := range buttons {
		b.Rect = geometry.Rect{
			X:      container.X,
			Y:      y,
			Width:  container.Width,
			Height: heights[i] - 1,
		}
		y += heights[i]
	}
	return nil
}

func checkLayout(buttons []*Button, container geometry.Rect) error {
	if len(buttons) == 0 {
		return fmt.Errorf("%w: no buttons to lay out", geometry.ErrInvalidArgument)
	}
	if container.Width <= 0 || container.Height <= 0 {
		return fmt.Errorf("%w: container %dx%d", geometry.ErrInvalidArgument, container.Width, container.Height)
	}
	return nil
}
