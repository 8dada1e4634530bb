package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWedgeAt(t *testing.T) {
	chart, err := ComputeChart(values(0, 25, 75), 100, 0)
	require.NoError(t, err)

	tests := []struct {
		angle float64
		want  int
	}{
		{0, 1},
		{45, 1},
		{90, 2},
		{359.9, 2},
		{360, 1},
		{-10, 2},
	}
	for _, tt := range tests {
		got, ok := chart.WedgeAt(tt.angle)
		assert.True(t, ok, "angle %v", tt.angle)
		assert.Equal(t, tt.want, got, "angle %v", tt.angle)
	}
}

func TestHitTest(t *testing.T) {
	chart, err := ComputeChart(values(1, 1, 1, 1), 200, 40)
	require.NoError(t, err)

	tests := []struct {
		name string
		p    Point
		want int
		ok   bool
	}{
		{"top right quadrant", Point{X: 150, Y: 50}, 0, true},
		{"bottom right quadrant", Point{X: 150, Y: 150}, 1, true},
		{"bottom left quadrant", Point{X: 50, Y: 150}, 2, true},
		{"top left quadrant", Point{X: 50, Y: 50}, 3, true},
		{"inside hole", Point{X: 110, Y: 110}, -1, false},
		{"outside ring", Point{X: 199, Y: 199}, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := chart.HitTest(tt.p)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHitTestEmptyChart(t *testing.T) {
	chart, err := ComputeChart(nil, 100, 0)
	require.NoError(t, err)

	_, ok := chart.HitTest(Point{X: 50, Y: 10})
	assert.False(t, ok)
}
