package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/layout"
)

// paletteItem is one runnable command in the palette.
type paletteItem struct {
	title  string
	hint   string
	action Action
}

func (i paletteItem) FilterValue() string { return i.title }
func (i paletteItem) Title() string       { return i.title }
func (i paletteItem) Description() string { return i.hint }

// PaletteModal is a filterable list of every layout command that applies to
// the current state.
type PaletteModal struct {
	list list.Model
}

var _ View = (*PaletteModal)(nil)

// paletteItems lists commands for e. Panels appear in registry order.
func paletteItems(e *layout.Engine) []list.Item {
	items := []list.Item{
		paletteItem{title: "Toggle sidebar", hint: "collapse or expand", action: Action{Kind: ActionSidebar}},
	}
	if len(e.Popouts.PoppedIDs()) > 0 {
		items = append(items, paletteItem{title: "Restore all pop-outs", action: Action{Kind: ActionRestoreAll}})
	}
	for _, p := range e.Layout.Panels() {
		popped := e.Popouts.Popped(p.ID)
		switch {
		case popped:
			items = append(items, paletteItem{title: "Restore " + p.Title, hint: "re-dock in " + string(p.Position), action: Action{Kind: ActionRestore, PanelID: p.ID}})
		case p.Visible:
			items = append(items,
				paletteItem{title: "Hide " + p.Title, hint: string(p.Position), action: Action{Kind: ActionToggle, PanelID: p.ID}},
				paletteItem{title: "Pop out " + p.Title, hint: "open in its own window", action: Action{Kind: ActionPopout, PanelID: p.ID}},
			)
		default:
			items = append(items, paletteItem{title: "Show " + p.Title, hint: string(p.Position), action: Action{Kind: ActionToggle, PanelID: p.ID}})
		}
		if popped {
			continue
		}
		for _, z := range layout.Zones() {
			if z == p.Position {
				continue
			}
			items = append(items, paletteItem{
				title:  fmt.Sprintf("Move %s to %s", p.Title, z),
				action: Action{Kind: ActionMove, PanelID: p.ID, Zone: z},
			})
		}
	}
	for _, n := range unavailable {
		items = append(items, paletteItem{title: n.title, hint: "not available", action: Action{Kind: ActionNotice, Text: n.text}})
	}
	return items
}

// unavailable lists dashboard commands that have no terminal equivalent yet.
// They stay discoverable in the palette and explain themselves when run.
var unavailable = []struct{ title, text string }{
	{"Change time range", "time range is fixed by the computation pipeline run"},
	{"Export data", "export the snapshot file directly: see FLRDASH_DATA_FILE"},
	{"Help", "SPC opens the command bar; drag panel titles to re-dock"},
}

// NewPaletteModal builds the palette for the engine's current state.
func NewPaletteModal(e *layout.Engine, width, height int) *PaletteModal {
	l := list.New(paletteItems(e), NewCompactListDelegate(), min(max(width-8, 30), 64), min(max(height-8, 8), 20))
	l.Title = "Commands"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &PaletteModal{list: l}
}

// Init implements View.
func (m *PaletteModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *PaletteModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if msg.String() == "enter" {
			sel, ok := m.list.SelectedItem().(paletteItem)
			if !ok {
				return m, nil
			}
			return m, tea.Sequence(
				func() tea.Msg { return DismissModalMsg{} },
				actionCmd(sel.action),
			)
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// CapturingInput reports whether the filter prompt owns the keyboard, in
// which case esc clears the filter rather than closing the palette.
func (m *PaletteModal) CapturingInput() bool {
	return m.list.FilterState() == list.Filtering
}

// View implements View.
func (m *PaletteModal) View() string {
	return Styles.Box.Render(m.list.View() + "\n" + Styles.Hint.Render("/: filter  Enter: run  Esc: close"))
}
