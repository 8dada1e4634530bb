package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathRoundTrip(t *testing.T) {
	chart, err := Compute(values(40, 30, 20, 10), Config{Size: 170, StrokeWidth: 20, InnerRadius: 60})
	require.NoError(t, err)

	paths := []Path{chart.Hole}
	for _, w := range chart.Wedges {
		paths = append(paths, w.Path)
	}

	for _, p := range paths {
		parsed, err := ParsePath(p.String())
		require.NoError(t, err)
		assert.Equal(t, p.String(), parsed.String())
		assert.Len(t, parsed, len(p))
	}
}

func TestParsePathCompactSyntax(t *testing.T) {
	path, err := ParsePath("M10,20L30-40A5 5 0 1 0 1e1 2z")
	require.NoError(t, err)

	want := Path{
		MoveTo{X: 10, Y: 20},
		LineTo{X: 30, Y: -40},
		ArcTo{RX: 5, RY: 5, LargeArc: true, X: 10, Y: 2},
		ClosePath{},
	}
	assert.Equal(t, want, path)
}

func TestParsePathErrors(t *testing.T) {
	tests := map[string]string{
		"unknown command": "M 0 0 Q 1 1 2 2",
		"truncated":       "M 0",
		"bad number":      "L x 1",
		"bad flag":        "A 1 1 0 2 0 1 1",
		"relative":        "m 0 0",
	}
	for name, d := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePath(d)
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyPath(t *testing.T) {
	path, err := ParsePath("  ")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(-1e-12))
	assert.Equal(t, "100", formatNumber(100.00000000000001))
	assert.Equal(t, "12.5", formatNumber(12.5))
	assert.Equal(t, "-3.25", formatNumber(-3.25))
	assert.Equal(t, "0.333333", formatNumber(1.0/3))
}
