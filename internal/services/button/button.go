package button

import (
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
)

// State is a button's visual state.
type State int

const (
	Idle State = iota
	Active
)

// Button is an on-screen push button.  ID is caller supplied and opaque; it
// is handed back verbatim when the button is selected, so callers may use
// ints, strings or anything else they can branch on.  Rect is assigned by a
// layout pass and re-assigned on every re-layout.
type Button struct {
	ID     interface{}
	Label  string
	Normal display.Style
	Active display.Style
	Rect   geometry.Rect
	State  State
}

// New builds a button in the default styles.
func New(id interface{}, label string) *Button {
	return &Button{
		ID:     id,
		Label:  label,
		Normal: display.ButtonNormal,
		Active: display.ButtonActive,
	}
}

// Style returns the style matching the button's current state.
func (b *Button) Style() display.Style {
	if b.State == Active {
		return b.Active
	}
	return b.Normal
}
