package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindsgn-studio/donut/anim"
	"github.com/mindsgn-studio/donut/definition"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(definition.Default(), "", zap.NewNop())
	require.NoError(t, err)
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.layers, 3)
	assert.Equal(t, 380.0, m.canvas)
	assert.Nil(t, m.watcher)
	assert.Len(t, m.legend.Rows(), 2)

	view := m.View()
	assert.Contains(t, view, "sessions")
	assert.Contains(t, view, "built-in journey screen")
}

func TestRingSelection(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.ring)
	assert.Len(t, m.legend.Rows(), 4)
	assert.Equal(t, "Inscription", m.legend.Rows()[0][0])

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.ring, "wraps around")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.ring)
}

func TestFocusAnimation(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 2, m.ring)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.legend.Cursor())

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.animating)
	assert.Equal(t, 1, m.drills[2].Focused())

	m, _ = send(t, m, frameMsg{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	// focusing mid-flight retargets without starting a second ticker
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.drills[2].Focused())

	frames := 0
	for m.animating {
		m, _ = send(t, m, frameMsg{})
		frames++
		require.Less(t, frames, 1000)
	}

	chart := m.layers[2].Chart
	assert.InDelta(t, anim.FocusedValue/95, chart.Wedges[2].Percentage, 1e-9)
	assert.Equal(t, "▸ Consultation", m.legend.Rows()[2][0])
	assert.Equal(t, "84%", m.legend.Rows()[2][2])

	// the other rings never moved
	assert.Equal(t, 65.0, m.layers[0].Chart.Wedges[0].Value)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReloadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	write := func(s string) {
		require.NoError(t, os.WriteFile(path, []byte(s), 0644))
	}
	write("rings:\n  - name: a\n    size: 100\n    segments:\n      - value: 1\n        color: \"#000000\"\n")

	def, err := definition.Load(path)
	require.NoError(t, err)
	m, err := NewModel(def, path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	write("rings:\n  - name: b\n    size: 100\n    segments:\n      - value: 1\n        color: \"#000000\"\n      - value: 3\n        color: \"#FFFFFF\"\n")
	m, _ = send(t, m, fileChangedMsg{})
	require.NoError(t, m.err)
	assert.Equal(t, "b", m.layers[0].Name)
	assert.Len(t, m.legend.Rows(), 2)

	// a broken file keeps the last good chart on screen
	write("rings: [")
	m, _ = send(t, m, key("r"))
	assert.Error(t, m.err)
	assert.Equal(t, "b", m.layers[0].Name)
	assert.Contains(t, m.View(), "failed to decode yaml")
}

func TestInvalidGeometryIsReported(t *testing.T) {
	def := definition.Default()
	def.Rings[0].StrokeWidth = -1
	_, err := NewModel(def, "", zap.NewNop())
	assert.Error(t, err)
}
