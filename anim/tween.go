package anim

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when start and end value sets differ in size
var ErrLengthMismatch = errors.New("tween endpoints differ in length")

// Tween interpolates a set of values from one layout to another. A spring
// drives a 0..1 progress value, so every value arrives at the same time
// and overshoots together.
type Tween struct {
	from   []float64
	to     []float64
	spring *Spring
}

// NewTween creates a tween driven by the default spring
func NewTween(from, to []float64) (*Tween, error) {
	return NewTweenWithSpring(from, to, DefaultSpring())
}

// NewTweenWithSpring creates a tween driven by a caller-supplied spring
func NewTweenWithSpring(from, to []float64, spring *Spring) (*Tween, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(from), len(to))
	}
	spring.Reset(0, 1)
	return &Tween{
		from:   append([]float64(nil), from...),
		to:     append([]float64(nil), to...),
		spring: spring,
	}, nil
}

// Step advances one frame and returns the interpolated values
func (t *Tween) Step() []float64 {
	t.spring.Step()
	return t.Values()
}

// Values returns the values at the current progress. Overshoot can push a
// shrinking value below zero, which the engine rejects, so values are
// floored at 0.
func (t *Tween) Values() []float64 {
	progress := t.spring.Position()
	if progress == 1 {
		return append([]float64(nil), t.to...)
	}
	out := make([]float64, len(t.from))
	for i := range t.from {
		v := t.from[i] + (t.to[i]-t.from[i])*progress
		out[i] = max(v, 0)
	}
	return out
}

// Progress returns the spring position, 0 at start and 1 at rest
func (t *Tween) Progress() float64 {
	return t.spring.Position()
}

// Done reports whether the tween has settled on its end values
func (t *Tween) Done() bool {
	return t.spring.Settled()
}

// Frames runs the tween to completion and returns every frame
func (t *Tween) Frames() [][]float64 {
	var frames [][]float64
	for !t.Done() {
		frames = append(frames, t.Step())
	}
	return frames
}
