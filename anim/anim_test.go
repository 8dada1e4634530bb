package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindsgn-studio/donut/engine"
)

func TestSpringSettlesOnTarget(t *testing.T) {
	s := DefaultSpring()
	s.Reset(0, 1)

	var peak float64
	frames := 0
	for !s.Settled() {
		peak = max(peak, s.Step())
		frames++
	}

	assert.Equal(t, 1.0, s.Position())
	assert.Greater(t, peak, 1.0, "an underdamped spring overshoots")
	assert.Less(t, frames, maxFrames, "spring should settle before the frame cap")

	// tension 40 / friction 7 is k=230.2, c=22: a short bounce of under 4%
	assert.InDelta(t, 1.0366, peak, 1e-4)
	assert.InDelta(t, 51, frames, 1)
}

func TestOrigamiConversion(t *testing.T) {
	assert.InDelta(t, 230.2, StiffnessFromTension(DefaultTension), 1e-9)
	assert.InDelta(t, 22.0, DampingFromFriction(DefaultFriction), 1e-9)
	assert.InDelta(t, 194.0, StiffnessFromTension(30), 1e-9)
	assert.InDelta(t, 25.0, DampingFromFriction(8), 1e-9)
}

func TestSpringAtRestDoesNotMove(t *testing.T) {
	s := DefaultSpring()
	s.Reset(3, 3)
	assert.True(t, s.Settled())
	assert.Equal(t, 3.0, s.Step())
}

func TestTweenLengthMismatch(t *testing.T) {
	_, err := NewTween([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestTweenEndsOnTarget(t *testing.T) {
	from := []float64{40, 30, 20, 10}
	to := []float64{80, 5, 5, 5}

	tween, err := NewTween(from, to)
	require.NoError(t, err)

	assert.Equal(t, from, tween.Values())

	frames := tween.Frames()
	require.NotEmpty(t, frames)
	assert.Equal(t, to, frames[len(frames)-1])
	assert.True(t, tween.Done())
	assert.Equal(t, 1.0, tween.Progress())
}

func TestTweenNeverGoesNegative(t *testing.T) {
	tween, err := NewTween([]float64{80, 5}, []float64{0, 100})
	require.NoError(t, err)

	for _, frame := range tween.Frames() {
		for _, v := range frame {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestTweenDoesNotAliasInputs(t *testing.T) {
	from := []float64{1, 2}
	to := []float64{3, 4}
	tween, err := NewTween(from, to)
	require.NoError(t, err)

	from[0] = 100
	to[0] = 100
	assert.Equal(t, []float64{1, 2}, tween.Values())
}

func TestFocusLayout(t *testing.T) {
	assert.Equal(t, []float64{5, 80, 5, 5}, FocusLayout(4, 1))
	assert.Equal(t, []float64{80}, FocusLayout(1, 0))
	assert.Equal(t, []float64{5, 5, 5, 85}, FocusLayout(4, 3))
}

func TestFocusedLastSegmentHidesSliverLabels(t *testing.T) {
	segs := make([]engine.Segment, 4)
	for i, v := range FocusLayout(4, 3) {
		segs[i] = engine.Segment{Value: v}
	}
	chart, err := engine.ComputeChart(segs, 170, 60)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.False(t, chart.Wedges[i].LabelVisible, "sliver %d", i)
	}
	assert.True(t, chart.Wedges[3].LabelVisible)
	assert.Equal(t, "85%", chart.Wedges[3].Label)

	// any other focus keeps the slivers labelled
	for i, v := range FocusLayout(4, 1) {
		segs[i] = engine.Segment{Value: v}
	}
	chart, err = engine.ComputeChart(segs, 170, 60)
	require.NoError(t, err)
	assert.True(t, chart.Wedges[0].LabelVisible)
}

func TestDrillDownToggle(t *testing.T) {
	defaults := []float64{40, 30, 20, 10}
	d := NewDrillDown(defaults)
	assert.Equal(t, NoFocus, d.Focused())
	assert.False(t, d.Step(), "nothing to animate yet")

	require.NoError(t, d.Toggle(2))
	assert.Equal(t, 2, d.Focused())
	assert.True(t, d.Animating())

	for d.Step() {
	}
	assert.False(t, d.Animating())
	assert.Equal(t, []float64{5, 5, 80, 5}, d.Values())

	require.NoError(t, d.Toggle(2))
	assert.Equal(t, NoFocus, d.Focused())
	for d.Step() {
	}
	assert.Equal(t, defaults, d.Values())
}

func TestDrillDownRetargetMidFlight(t *testing.T) {
	d := NewDrillDown([]float64{40, 30, 20, 10})
	require.NoError(t, d.Toggle(0))
	for i := 0; i < 5; i++ {
		d.Step()
	}
	midway := d.Values()

	require.NoError(t, d.Toggle(3))
	assert.Equal(t, 3, d.Focused())
	assert.Equal(t, midway, d.Values(), "new tween starts from what is on screen")

	for d.Step() {
	}
	assert.Equal(t, []float64{5, 5, 5, 85}, d.Values())
}

func TestDrillDownOutOfRange(t *testing.T) {
	d := NewDrillDown([]float64{1, 2})
	assert.Error(t, d.Toggle(2))
	assert.Error(t, d.Toggle(-1))
	assert.Equal(t, NoFocus, d.Focused())
}

func TestDrillDownReset(t *testing.T) {
	d := NewDrillDown([]float64{1, 2})
	require.NoError(t, d.Toggle(0))
	d.Reset([]float64{7, 8, 9})

	assert.False(t, d.Animating())
	assert.Equal(t, NoFocus, d.Focused())
	assert.Equal(t, []float64{7, 8, 9}, d.Values())
}

func TestDrillDownSegmentsFeedEngine(t *testing.T) {
	base := []engine.Segment{
		{Value: 40, Color: "#78F5B2", Label: "signup"},
		{Value: 60, Color: "#E97C64", Label: "exit"},
	}
	d := NewDrillDown([]float64{40, 60})

	resting := d.Segments(base)
	assert.Equal(t, base, resting, "labels survive while resting on defaults")

	require.NoError(t, d.Toggle(0))
	for d.Step() {
	}
	focused := d.Segments(base)
	assert.Equal(t, 80.0, focused[0].Value)
	assert.Equal(t, "#78F5B2", focused[0].Color)
	assert.Empty(t, focused[0].Label)

	chart, err := engine.ComputeChart(focused, 170, 60)
	require.NoError(t, err)
	assert.Equal(t, "94%", chart.Wedges[0].Label)
	assert.Equal(t, "6%", chart.Wedges[1].Label)
	assert.True(t, chart.Wedges[1].LabelVisible)
}
