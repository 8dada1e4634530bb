package render

import (
	"math/bits"
	"strings"

	"github.com/charmbracelet/lipgloss"
	drawille "github.com/exrook/drawille-go"

	"github.com/mindsgn-studio/donut/engine"
)

const (
	brailleBase = 0x2800

	// a braille cell is 2 dots wide and 4 dots tall
	cellDotsX = 2
	cellDotsY = 4
)

type wedgeKey struct {
	ring  int
	wedge int
}

// Braille draws the layers into cols terminal columns. Every wedge gets its
// own drawille canvas; the canvases are merged cell by cell and each cell
// takes the color of the wedge owning most of its dots.
func Braille(canvasSize float64, layers engine.Layers, cols int) string {
	if cols <= 0 || canvasSize <= 0 {
		return ""
	}

	// braille dots are close to square, so the dot grid is square too
	dots := cols * cellDotsX
	rows := (dots + cellDotsY - 1) / cellDotsY
	scale := canvasSize / float64(dots)

	canvases := map[wedgeKey]*drawille.Canvas{}
	var order []wedgeKey

	for y := 0; y < rows*cellDotsY; y++ {
		for x := 0; x < dots; x++ {
			p := engine.Point{X: (float64(x) + 0.5) * scale, Y: (float64(y) + 0.5) * scale}
			ring, wedge, ok := layers.HitTest(p)
			if !ok {
				continue
			}
			key := wedgeKey{ring: ring, wedge: wedge}
			c, found := canvases[key]
			if !found {
				nc := drawille.NewCanvas()
				c = &nc
				canvases[key] = c
				order = append(order, key)
			}
			c.Set(x, y)
		}
	}

	frames := make(map[wedgeKey][][]rune, len(canvases))
	for key, c := range canvases {
		lines := c.Rows(0, 0, dots-1, rows*cellDotsY-1)
		grid := make([][]rune, len(lines))
		for i, line := range lines {
			grid[i] = []rune(line)
		}
		frames[key] = grid
	}

	styles := make(map[wedgeKey]lipgloss.Style, len(order))
	for _, key := range order {
		color := layers[key.ring].Chart.Wedges[key.wedge].Color
		styles[key] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var mask rune
			owner, best := wedgeKey{}, -1
			for _, key := range order {
				dotsSet := cellBits(frames[key], row, col)
				if dotsSet == 0 {
					continue
				}
				mask |= dotsSet
				if n := bits.OnesCount32(uint32(dotsSet)); n > best {
					owner, best = key, n
				}
			}
			if mask == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(styles[owner].Render(string(brailleBase + mask)))
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cellBits returns the dot pattern of one cell, treating spaces and the
// blank braille rune alike
func cellBits(grid [][]rune, row, col int) rune {
	if row >= len(grid) || col >= len(grid[row]) {
		return 0
	}
	r := grid[row][col]
	if r < brailleBase || r > brailleBase+0xFF {
		return 0
	}
	return r - brailleBase
}
