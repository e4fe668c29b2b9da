package common

import (
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
)

// Surface is the draw contract the selection controller consumes.  The
// controller never emits escape sequences or glyphs itself; a Surface accepts
// whole-rectangle fills, positioned text and an explicit flush.
type Surface interface {
	Size() (cols int, rows int)
	Fill(r geometry.Rect, s display.Style)
	PrintAt(text string, col int, row int) bool
	Present() error
}
