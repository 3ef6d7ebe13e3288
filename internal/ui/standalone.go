package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/ui/textutil"
)

// StandaloneModel shows one panel full-screen. It is what a pop-out window
// runs; closing it (q) is how the dashboard learns to re-dock the panel.
type StandaloneModel struct {
	Panel    layout.Panel
	Snapshot indicators.Snapshot

	viewport      viewport.Model
	width, height int
	err           error
}

var _ tea.Model = (*StandaloneModel)(nil)

// NewStandaloneModel creates the model for panel p.
func NewStandaloneModel(p layout.Panel, s indicators.Snapshot) *StandaloneModel {
	return &StandaloneModel{Panel: p, Snapshot: s, viewport: viewport.New(0, 0)}
}

// refresh re-renders every row into the viewport; the viewport scrolls what
// does not fit.
func (m *StandaloneModel) refresh() {
	rows := indicators.Rows(m.Snapshot, m.Panel.ID)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = textutil.LabelValue(r.Label, r.Value, m.viewport.Width)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// Init implements tea.Model.
func (m *StandaloneModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *StandaloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Border (2) plus title row and status line.
		m.viewport.Width = max(msg.Width-2, 0)
		m.viewport.Height = max(msg.Height-5, 0)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case SnapshotMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.Snapshot = msg.Snapshot
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *StandaloneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}
	status := Styles.Hint.Render(" j/k: scroll  q: close and re-dock")
	if m.err != nil {
		status = Styles.StatusError.Render(" reload: " + m.err.Error())
	}
	content := Styles.Title.Render(textutil.Truncate(m.Panel.Title, max(m.width-2, 0))) + "\n" + m.viewport.View()
	return box(Styles.Panel.BorderForeground(CategoryColor(m.Panel.Category)), content, m.width, m.height-1) + "\n" + status
}
