package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/layout"
)

type menuEntry struct {
	label  string
	action Action
}

// PanelMenu is the per-panel context menu: the keyboard alternative to
// dragging, plus hide and pop-out.
type PanelMenu struct {
	PanelID  string
	title    string
	entries  []menuEntry
	selected int
}

var _ View = (*PanelMenu)(nil)

// NewPanelMenu builds the menu for panel p. Moving to the panel's current
// zone is omitted since it would do nothing.
func NewPanelMenu(p layout.Panel, popped bool) *PanelMenu {
	m := &PanelMenu{PanelID: p.ID, title: p.Title}
	if popped {
		m.entries = append(m.entries, menuEntry{"Restore to dashboard", Action{Kind: ActionRestore, PanelID: p.ID}})
		return m
	}
	for _, z := range layout.Zones() {
		if z == p.Position {
			continue
		}
		m.entries = append(m.entries, menuEntry{"Move to " + string(z), Action{Kind: ActionMove, PanelID: p.ID, Zone: z}})
	}
	hide := "Hide"
	if !p.Visible {
		hide = "Show"
	}
	m.entries = append(m.entries,
		menuEntry{hide, Action{Kind: ActionToggle, PanelID: p.ID}},
		menuEntry{"Pop out", Action{Kind: ActionPopout, PanelID: p.ID}},
	)
	return m
}

// Init implements View.
func (m *PanelMenu) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *PanelMenu) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(m.entries) == 0 {
		return m, nil
	}
	switch km.String() {
	case "j", "down":
		m.selected = (m.selected + 1) % len(m.entries)
	case "k", "up":
		m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
	case "enter":
		a := m.entries[m.selected].action
		return m, tea.Sequence(
			func() tea.Msg { return DismissModalMsg{} },
			actionCmd(a),
		)
	}
	return m, nil
}

// Selected returns the highlighted action.
func (m *PanelMenu) Selected() (Action, bool) {
	if len(m.entries) == 0 {
		return Action{}, false
	}
	return m.entries[m.selected].action, true
}

// View implements View.
func (m *PanelMenu) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(m.title))
	b.WriteString("\n\n")
	for i, e := range m.entries {
		if i == m.selected {
			b.WriteString(Styles.Selected.Render("> " + e.label))
		} else {
			b.WriteString(Styles.Normal.Render("  " + e.label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("j/k: select  Enter: apply  Esc: close"))
	return Styles.Box.Render(b.String())
}
