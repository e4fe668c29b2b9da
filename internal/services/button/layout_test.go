package button

import (
	"errors"
	"testing"

	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
)

func makeButtons(n int) []*Button {
	buttons := make([]*Button, n)
	for i := range buttons {
		buttons[i] = New(i+1, "b")
	}
	return buttons
}

func TestLayoutHorizontal(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		container geometry.Rect
		want      []geometry.Rect
	}{
		{
			// partition(21, 3) = [7, 7, 6]; each slot gives a gap unit back
			name:      "abort retry fail strip",
			count:     3,
			container: geometry.Rect{X: 1, Y: 18, Width: 20, Height: 3},
			want: []geometry.Rect{
				{X: 1, Y: 18, Width: 6, Height: 3},
				{X: 8, Y: 18, Width: 6, Height: 3},
				{X: 15, Y: 18, Width: 5, Height: 3},
			},
		},
		{
			name:      "single button owns the container",
			count:     1,
			container: geometry.Rect{X: 1, Y: 1, Width: 10, Height: 2},
			want: []geometry.Rect{
				{X: 1, Y: 1, Width: 10, Height: 2},
			},
		},
		{
			name:      "even split",
			count:     2,
			container: geometry.Rect{X: 5, Y: 4, Width: 11, Height: 1},
			want: []geometry.Rect{
				{X: 5, Y: 4, Width: 5, Height: 1},
				{X: 11, Y: 4, Width: 5, Height: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buttons := makeButtons(tt.count)
			if err := LayoutHorizontal(buttons, tt.container); err != nil {
				t.Fatalf("LayoutHorizontal: %v", err)
			}
			for i, b := range buttons {
				if b.Rect != tt.want[i] {
					t.Errorf("buttons[%d].Rect: got %+v, want %+v", i, b.Rect, tt.want[i])
				}
			}
			assertStrip(t, buttons, tt.container)
		})
	}
}

func TestLayoutVertical(t *testing.T) {
	// partition(12, 2) = [6, 6]: five rows each with a one-row gap between
	container := geometry.Rect{X: 1, Y: 2, Width: 30, Height: 11}
	buttons := makeButtons(2)
	if err := LayoutVertical(buttons, container); err != nil {
		t.Fatalf("LayoutVertical: %v", err)
	}

	want := []geometry.Rect{
		{X: 1, Y: 2, Width: 30, Height: 5},
		{X: 1, Y: 8, Width: 30, Height: 5},
	}
	for i, b := range buttons {
		if b.Rect != want[i] {
			t.Errorf("buttons[%d].Rect: got %+v, want %+v", i, b.Rect, want[i])
		}
	}
	if gap := buttons[1].Rect.Y - (buttons[0].Rect.Y + buttons[0].Rect.Height); gap != 1 {
		t.Errorf("vertical gap: got %d, want 1", gap)
	}
}

// The slots (rectangle plus its gap unit) must tile the padded container
// span with no overlap, and neighbours sit exactly one unit apart.
func assertStrip(t *testing.T, buttons []*Button, container geometry.Rect) {
	t.Helper()

	slots := 0
	for i, b := range buttons {
		slots += b.Rect.Width + 1
		if b.Rect.Y != container.Y || b.Rect.Height != container.Height {
			t.Errorf("buttons[%d] does not share the container rows: %+v", i, b.Rect)
		}
		if i == 0 {
			if b.Rect.X != container.X {
				t.Errorf("first button starts at %d, want %d", b.Rect.X, container.X)
			}
			continue
		}
		prev := buttons[i-1].Rect
		if gap := b.Rect.X - (prev.X + prev.Width); gap != 1 {
			t.Errorf("gap before buttons[%d]: got %d, want 1", i, gap)
		}
	}
	if slots != container.Width+1 {
		t.Errorf("slot total: got %d, want %d", slots, container.Width+1)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	container := geometry.Rect{X: 1, Y: 18, Width: 20, Height: 3}
	buttons := makeButtons(3)

	if err := LayoutHorizontal(buttons, container); err != nil {
		t.Fatalf("first layout: %v", err)
	}
	first := []geometry.Rect{buttons[0].Rect, buttons[1].Rect, buttons[2].Rect}

	if err := LayoutHorizontal(buttons, container); err != nil {
		t.Fatalf("second layout: %v", err)
	}
	for i, b := range buttons {
		if b.Rect != first[i] {
			t.Errorf("buttons[%d].Rect changed on re-layout: %+v != %+v", i, b.Rect, first[i])
		}
	}
}

func TestLayoutInvalid(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		container geometry.Rect
	}{
		{name: "no buttons", count: 0, container: geometry.Rect{X: 1, Y: 1, Width: 10, Height: 3}},
		{name: "zero width", count: 2, container: geometry.Rect{X: 1, Y: 1, Width: 0, Height: 3}},
		{name: "negative height", count: 2, container: geometry.Rect{X: 1, Y: 1, Width: 10, Height: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := LayoutHorizontal(makeButtons(tt.count), tt.container); !errors.Is(err, geometry.ErrInvalidArgument) {
				t.Errorf("LayoutHorizontal: got %v, want ErrInvalidArgument", err)
			}
			if err := LayoutVertical(makeButtons(tt.count), tt.container); !errors.Is(err, geometry.ErrInvalidArgument) {
				t.Errorf("LayoutVertical: got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestButtonStyle(t *testing.T) {
	b := New("ok", "OK")
	if b.Style() != b.Normal {
		t.Error("idle button should use its normal style")
	}
	b.State = Active
	if b.Style() != b.Active {
		t.Error("active button should use its active style")
	}
}
