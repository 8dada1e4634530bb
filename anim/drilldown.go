package anim

import (
	"fmt"

	"github.com/mindsgn-studio/donut/engine"
)

const (
	// FocusedValue is the weight a focused segment grows to
	FocusedValue = 80.0
	// UnfocusedValue is the weight the other segments shrink to; they stay
	// visible as slivers instead of disappearing
	UnfocusedValue = 5.0
	// FocusedLastValue is the weight of a focused last segment. On the four
	// segment journey ring it completes the slivers to exactly 100, so each
	// sliver sits on the label threshold and shows no label.
	FocusedLastValue = 85.0

	NoFocus = -1
)

// DrillDown tracks which segment of a ring is focused and animates the
// ring between its default layout and the focused layout.
type DrillDown struct {
	defaults []float64
	current  []float64
	focused  int
	tween    *Tween
}

// NewDrillDown starts unfocused, resting on defaults
func NewDrillDown(defaults []float64) *DrillDown {
	return &DrillDown{
		defaults: append([]float64(nil), defaults...),
		current:  append([]float64(nil), defaults...),
		focused:  NoFocus,
	}
}

// Focused returns the focused index or NoFocus
func (d *DrillDown) Focused() int {
	return d.focused
}

// Toggle focuses index, or returns to the defaults when index is already
// focused. A running animation is replaced and continues from the values
// currently on screen.
func (d *DrillDown) Toggle(index int) error {
	if index < 0 || index >= len(d.defaults) {
		return fmt.Errorf("segment index %d out of range [0,%d)", index, len(d.defaults))
	}

	var target []float64
	if d.focused == index {
		target = d.defaults
		d.focused = NoFocus
	} else {
		target = FocusLayout(len(d.defaults), index)
		d.focused = index
	}

	tween, err := NewTween(d.current, target)
	if err != nil {
		return err
	}
	d.tween = tween
	return nil
}

// Reset drops any animation and rests on new defaults
func (d *DrillDown) Reset(defaults []float64) {
	d.defaults = append([]float64(nil), defaults...)
	d.current = append([]float64(nil), defaults...)
	d.focused = NoFocus
	d.tween = nil
}

// Step advances one frame. It reports whether more frames follow.
func (d *DrillDown) Step() bool {
	if d.tween == nil {
		return false
	}
	d.current = d.tween.Step()
	if d.tween.Done() {
		d.tween = nil
		return false
	}
	return true
}

// Animating reports whether a tween is in flight
func (d *DrillDown) Animating() bool {
	return d.tween != nil
}

// Values returns the values for the current frame
func (d *DrillDown) Values() []float64 {
	return append([]float64(nil), d.current...)
}

// Segments applies the current frame to base. Away from the defaults the
// labels are cleared so the engine derives them from the live shares.
func (d *DrillDown) Segments(base []engine.Segment) []engine.Segment {
	derive := d.Animating() || d.focused != NoFocus
	out := make([]engine.Segment, len(base))
	for i, s := range base {
		out[i] = s
		if i < len(d.current) {
			out[i].Value = d.current[i]
			if derive {
				out[i].Label = ""
			}
		}
	}
	return out
}

// FocusLayout returns the weights for n segments with index focused
func FocusLayout(n, index int) []float64 {
	focused := FocusedValue
	if n > 1 && index == n-1 {
		focused = FocusedLastValue
	}
	layout := make([]float64, n)
	for i := range layout {
		if i == index {
			layout[i] = focused
		} else {
			layout[i] = UnfocusedValue
		}
	}
	return layout
}
