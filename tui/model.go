// Package tui is an interactive terminal viewer for ring-chart definitions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mindsgn-studio/donut/anim"
	"github.com/mindsgn-studio/donut/definition"
	"github.com/mindsgn-studio/donut/engine"
	"github.com/mindsgn-studio/donut/render"
)

const (
	defaultCols = 40
	minCols     = 10
)

// Model is the main TUI model
type Model struct {
	// Source
	def     *definition.Definition
	path    string // empty for the built-in journey screen
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	// Chart state
	base      [][]engine.Segment
	drills    []*anim.DrillDown
	layers    engine.Layers
	canvas    float64
	ring      int
	animating bool
	err       error

	// Components
	legend table.Model
	share  progress.Model

	// Window size
	width  int
	height int

	// Styles
	styles Styles
}

// Styles contains all lipgloss styles
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Chart     lipgloss.Style
	Table     lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3150C7")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Background(lipgloss.Color("#3150C7")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		Chart: lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1),
		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3150C7")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E97C64")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1),
	}
}

// NewModel creates the viewer for def. When path is set the file is
// watched and reloaded on change.
func NewModel(def *definition.Definition, path string, logger *zap.Logger) (Model, error) {
	columns := []table.Column{
		{Title: "Segment", Width: 16},
		{Title: "Value", Width: 10},
		{Title: "Share", Width: 8},
		{Title: "Color", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(6),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3150C7")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#3150C7")).
		Bold(false)
	t.SetStyles(s)

	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
	)

	m := Model{
		path:   path,
		logger: logger,
		legend: t,
		share:  prog,
		styles: defaultStyles(),
	}
	if err := m.load(def); err != nil {
		return Model{}, err
	}
	m.watcher = newWatcher(path, logger)
	return m, nil
}

// Close stops watching the definition file
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForChange(m.watcher, m.path, m.logger),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case frameMsg:
		return m.handleFrame()

	case fileChangedMsg:
		m.reload()
		return m, waitForChange(m.watcher, m.path, m.logger)

	case watchErrMsg:
		m.err = fmt.Errorf("watching %s: %w", m.path, msg.err)
		return m, waitForChange(m.watcher, m.path, m.logger)
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	title := m.styles.Title.Render("Ring chart")
	subtitle := m.styles.Subtitle.Render(m.source())

	tabs := make([]string, len(m.layers))
	for i, l := range m.layers {
		if i == m.ring {
			tabs[i] = m.styles.ActiveTab.Render(l.Name)
		} else {
			tabs[i] = m.styles.Tab.Render(l.Name)
		}
	}

	chart := m.styles.Chart.Render(render.Braille(m.canvas, m.layers, m.cols()))
	legend := m.styles.Table.Render(m.legend.View())

	share := 0.0
	if w, ok := m.selectedWedge(); ok {
		share = w.Percentage
	}
	bar := fmt.Sprintf("Share: %s", m.share.ViewAs(share))

	parts := []string{
		title,
		subtitle,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		chart,
		legend,
		bar,
	}
	if m.err != nil {
		parts = append(parts, m.styles.Error.Render(m.err.Error()))
	}
	parts = append(parts, m.styles.Help.Render(
		"[tab] Next ring  [↑/↓] Segment  [enter] Focus  [r] Reload  [q] Quit",
	))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if len(m.layers) > 0 {
			m.selectRing((m.ring + 1) % len(m.layers))
		}
		return m, nil

	case "shift+tab":
		if len(m.layers) > 0 {
			m.selectRing((m.ring + len(m.layers) - 1) % len(m.layers))
		}
		return m, nil

	case "enter":
		return m.toggleFocus()

	case "r":
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.legend, cmd = m.legend.Update(msg)
	return m, cmd
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.ring >= len(m.drills) || len(m.base[m.ring]) == 0 {
		return m, nil
	}

	index := m.legend.Cursor()
	if err := m.drills[m.ring].Toggle(index); err != nil {
		m.err = err
		return m, nil
	}
	m.logger.Debug("toggled focus",
		zap.String("ring", m.layers[m.ring].Name),
		zap.Int("segment", index),
		zap.Int("focused", m.drills[m.ring].Focused()))

	if m.animating {
		return m, nil
	}
	m.animating = true
	return m, frameCmd()
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	more := false
	for _, d := range m.drills {
		if d.Step() {
			more = true
		}
	}
	m.recompute()

	if !more {
		m.animating = false
		return m, nil
	}
	return m, frameCmd()
}

// load swaps in a new definition and drops any focus
func (m *Model) load(def *definition.Definition) error {
	stack, err := def.Stack()
	if err != nil {
		return err
	}

	base := make([][]engine.Segment, len(stack.Rings))
	drills := make([]*anim.DrillDown, len(stack.Rings))
	for i, r := range stack.Rings {
		base[i] = r.Segments
		drills[i] = anim.NewDrillDown(def.Rings[i].Values())
	}

	m.def = def
	m.base = base
	m.drills = drills
	m.animating = false
	if m.ring >= len(base) {
		m.ring = 0
	}
	m.recompute()
	return m.err
}

// reload rereads the definition file, keeping the current one on failure
func (m *Model) reload() {
	def := definition.Default()
	if m.path != "" {
		loaded, err := definition.Load(m.path)
		if err != nil {
			m.logger.Warn("failed to reload definition", zap.String("path", m.path), zap.Error(err))
			m.err = err
			return
		}
		def = loaded
	}

	previous := m.def
	if err := m.load(def); err != nil {
		m.logger.Warn("invalid definition", zap.String("path", m.path), zap.Error(err))
		if previous != nil && previous != def {
			_ = m.load(previous)
		}
		m.err = err
		return
	}
	m.logger.Info("reloaded definition", zap.String("path", m.path), zap.Int("rings", len(def.Rings)))
}

// recompute lays out every ring with its current animation frame
func (m *Model) recompute() {
	stack, err := m.def.Stack()
	if err != nil {
		m.err = err
		return
	}
	for i := range stack.Rings {
		stack.Rings[i].Segments = m.drills[i].Segments(m.base[i])
	}

	layers, err := stack.Compute(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.layers = layers
	m.canvas = stack.CanvasSize()
	m.refreshLegend()
}

func (m *Model) selectRing(ring int) {
	m.ring = ring
	m.legend.SetCursor(0)
	m.refreshLegend()
}

func (m *Model) refreshLegend() {
	if m.ring >= len(m.layers) {
		m.legend.SetRows(nil)
		return
	}

	chart := m.layers[m.ring].Chart
	base := m.base[m.ring]
	rows := make([]table.Row, len(chart.Wedges))
	for i, w := range chart.Wedges {
		name := w.Label
		if i < len(base) && base[i].Label != "" {
			name = base[i].Label
		}
		if m.drills[m.ring].Focused() == i {
			name = "▸ " + name
		}
		rows[i] = table.Row{
			name,
			fmt.Sprintf("%.1f", w.Value),
			engine.PercentLabel(w.Percentage),
			strings.ToUpper(w.Color),
		}
	}
	m.legend.SetRows(rows)
}

func (m Model) selectedWedge() (engine.Wedge, bool) {
	if m.ring >= len(m.layers) {
		return engine.Wedge{}, false
	}
	wedges := m.layers[m.ring].Chart.Wedges
	i := m.legend.Cursor()
	if i < 0 || i >= len(wedges) {
		return engine.Wedge{}, false
	}
	return wedges[i], true
}

func (m Model) cols() int {
	if m.width <= 0 {
		return defaultCols
	}
	return max(minCols, min(defaultCols, m.width/2))
}

func (m Model) source() string {
	if m.path == "" {
		return "built-in journey screen"
	}
	return m.path
}

// Messages
type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/anim.FPS, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
