package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/layout"
)

// handleMouse turns pointer events into drag, drop and resize gestures.
// Hit-testing uses the geometry of the last rendered frame.
func (a *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	g := a.geom
	if g == nil {
		return nil
	}

	// A resize in progress captures every event until release.
	if a.Engine.Sidebar.Resizing() {
		switch msg.Action {
		case tea.MouseActionMotion:
			a.resizeTo(msg.X)
		case tea.MouseActionRelease:
			a.resizeTo(msg.X)
			a.Engine.Sidebar.Release()
		}
		return nil
	}

	if _, dragging := a.Engine.Drag.Dragging(); dragging {
		switch msg.Action {
		case tea.MouseActionMotion:
			if z, ok := g.zoneAt(msg.X, msg.Y); ok {
				a.Engine.DragOver(z)
			} else {
				a.Engine.DragOver("")
			}
		case tea.MouseActionRelease:
			if z, ok := g.zoneAt(msg.X, msg.Y); ok {
				a.Engine.DropOn(z)
			} else {
				a.Engine.CancelDrag()
			}
		}
		return nil
	}

	if a.Overlays.Len() > 0 || msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if g.onHandle(msg.X, msg.Y) {
			a.Engine.Sidebar.Press()
			return nil
		}
		if id, ok := g.titleAt(msg.X, msg.Y); ok {
			a.Focus.SetFocus(id)
			a.Engine.Drag.Begin(id)
			return nil
		}
		if id, ok := g.panelAt(msg.X, msg.Y); ok {
			a.Focus.SetFocus(id)
			return nil
		}
		if a.Engine.Layout.SidebarCollapsed() && g.zones[layout.ZoneSidebar].Contains(msg.X, msg.Y) {
			return actionCmd(Action{Kind: ActionSidebar})
		}
	case tea.MouseButtonRight:
		if id, ok := g.panelAt(msg.X, msg.Y); ok {
			return emit(ShowPanelMenuMsg{PanelID: id})
		}
	}
	return nil
}

// endGestures stops any resize or drag in progress. A resize keeps the last
// width it reached; a drag is cancelled.
func (a *AppModel) endGestures() {
	if a.Engine.Sidebar.Resizing() {
		a.Engine.Sidebar.Release()
	}
	if _, ok := a.Engine.Drag.Dragging(); ok {
		a.Engine.CancelDrag()
	}
}

// resizeTo converts a pointer column into the pixel units the sidebar
// controller works in.
func (a *AppModel) resizeTo(x int) {
	a.Engine.Sidebar.Move(x*a.CellWidthPx, a.geom.width*a.CellWidthPx)
}
