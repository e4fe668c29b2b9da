package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument flags a caller error.  It is raised before any drawing
// or device I/O has happened and is never retried.
var ErrInvalidArgument = errors.New("invalid argument")

// Rect is a screen region in character cell units. X,Y is the top left corner.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies within the rectangle.  The test is
// inclusive on all four edges, so the cell at X+Width,Y+Height is inside.
// A consequence is that a cell on the shared boundary of two touching
// rectangles belongs to both; callers resolve the ambiguity by testing in a
// fixed order.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Partition divides total into n non-negative integers that sum exactly to
// total.  The remainder of total/n is spent one unit at a time on the leading
// elements, so the first total%n entries are one larger than the rest.
func Partition(total, n int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: partition count must be positive, have %d", ErrInvalidArgument, n)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: partition total must be non-negative, have %d", ErrInvalidArgument, total)
	}

	parts := make([]int, n)
	size := total / n
	remainder := total % n
	for i := range parts {
		parts[i] = size
		if i < remainder {
			parts[i]++
		}
	}
	return parts, nil
}
