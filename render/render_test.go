package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindsgn-studio/donut/engine"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func singleRing(t *testing.T, cfg engine.Config, values ...float64) engine.Layers {
	t.Helper()
	segs := make([]engine.Segment, len(values))
	colors := []string{"#78F5B2", "#E97C64", "#F2C55E", "#000000"}
	for i, v := range values {
		segs[i] = engine.Segment{Value: v, Color: colors[i%len(colors)]}
	}
	layers, err := engine.Stack{Rings: []engine.Ring{{Name: "r", Config: cfg, Segments: segs}}}.Compute(context.Background())
	require.NoError(t, err)
	return layers
}

func TestSVGDocument(t *testing.T) {
	layers := singleRing(t, engine.Config{Size: 200, InnerRadius: 60, ShowLabels: true}, 40, 30, 20, 10)

	opts := DefaultOptions()
	opts.ID = "chart"
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, 200, layers, opts))
	out := buf.String()

	assert.Contains(t, out, `<svg`)
	assert.Contains(t, out, `width="200"`)
	assert.Contains(t, out, `id="chart-0"`)
	assert.Contains(t, out, `transform="translate(0,0)"`)
	for _, w := range layers[0].Chart.Wedges {
		assert.Contains(t, out, w.Path.String())
		assert.Contains(t, out, "fill:"+w.Color+";stroke:#FFFFFF;stroke-width:1")
		assert.Contains(t, out, ">"+w.Label+"<")
	}
	assert.Contains(t, out, `d="`+layers[0].Chart.Hole.String()+`"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))

	// the hole is painted after the last wedge and before the first label
	lastWedge := strings.LastIndex(out, layers[0].Chart.Wedges[3].Path.String())
	hole := strings.Index(out, layers[0].Chart.Hole.String())
	label := strings.Index(out, "<text")
	assert.Less(t, lastWedge, hole)
	assert.Less(t, hole, label)
}

func TestSVGHidesSmallAndDisabledLabels(t *testing.T) {
	layers := singleRing(t, engine.Config{Size: 100, ShowLabels: true}, 96, 4)
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, 100, layers, DefaultOptions()))
	assert.Contains(t, buf.String(), ">96%<")
	assert.NotContains(t, buf.String(), ">4%<")

	layers = singleRing(t, engine.Config{Size: 100}, 50, 50)
	buf.Reset()
	require.NoError(t, SVG(&buf, 100, layers, DefaultOptions()))
	assert.NotContains(t, buf.String(), "<text")
}

func TestSVGRandomIDs(t *testing.T) {
	layers := singleRing(t, engine.Config{Size: 100}, 1)
	var a, b bytes.Buffer
	require.NoError(t, SVG(&a, 100, layers, DefaultOptions()))
	require.NoError(t, SVG(&b, 100, layers, DefaultOptions()))
	assert.NotEqual(t, a.String(), b.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVGWriteError(t *testing.T) {
	layers := singleRing(t, engine.Config{Size: 100}, 1)
	err := SVG(failingWriter{}, 100, layers, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestBrailleShape(t *testing.T) {
	layers := singleRing(t, engine.Config{Size: 100, InnerRadius: 30}, 1, 1)
	out := plain(Braille(100, layers, 20))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}

	center := []rune(lines[5])
	assert.Equal(t, ' ', center[10], "the hole stays blank")
	assert.NotEqual(t, ' ', []rune(lines[0])[10], "the ring reaches the top edge")
}

func TestBrailleEmpty(t *testing.T) {
	assert.Empty(t, Braille(100, nil, 0))
	layers := singleRing(t, engine.Config{Size: 100}, 0, 0)
	out := Braille(100, layers, 4)
	assert.Equal(t, "    \n    ", out)
}

func TestFrameWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	opts := DefaultOptions()
	opts.ID = "f"
	fw, err := NewFrameWriter(dir, 100, opts)
	require.NoError(t, err)

	layers := singleRing(t, engine.Config{Size: 100}, 1, 2)
	for i := 0; i < 3; i++ {
		_, err := fw.WriteFrame(layers)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, fw.Count())
	assert.Equal(t, dir, fw.Dir())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "frame-0000.svg", entries[0].Name())
	assert.Equal(t, "frame-0002.svg", entries[2].Name())

	data, err := os.ReadFile(filepath.Join(dir, "frame-0001.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), layers[0].Chart.Wedges[1].Path.String())
}
