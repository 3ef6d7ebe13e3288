package layout

import "context"

// Commands is the operation set shared by direct manipulation, the command
// palette and the remote command server.
type Commands interface {
	TogglePanel(id string)
	MovePanel(id string, zone Zone)
	ToggleSidebar()
	Popout(ctx context.Context, id string) error
	Restore(id string)
}

// Engine bundles a Layout with its interaction controllers.
type Engine struct {
	Layout  *Layout
	Popouts *Popouts
	Sidebar *SidebarController
	Drag    *DragSession
	Targets map[Zone]*DropTarget
}

var _ Commands = (*Engine)(nil)

// NewEngine wires controllers around l.
func NewEngine(l *Layout, popouts *Popouts) *Engine {
	if popouts == nil {
		popouts = NewPopouts(l, nil, nil, nil)
	}
	return &Engine{
		Layout:  l,
		Popouts: popouts,
		Sidebar: NewSidebarController(l),
		Drag:    &DragSession{},
		Targets: NewDropTargets(),
	}
}

// TogglePanel flips visibility. A popped-out panel is restored instead, so it
// is never shown docked and detached at once.
func (e *Engine) TogglePanel(id string) {
	if e.Popouts.Popped(id) {
		e.Popouts.Restore(id)
		return
	}
	e.Layout.TogglePanel(id)
}

// MovePanel re-docks a panel; the non-drag equivalent of a drop.
func (e *Engine) MovePanel(id string, zone Zone) {
	e.Layout.MovePanel(id, zone)
}

// ToggleSidebar collapses or expands the sidebar.
func (e *Engine) ToggleSidebar() {
	e.Layout.ToggleSidebar()
}

// Popout detaches a panel into an external surface.
func (e *Engine) Popout(ctx context.Context, id string) error {
	return e.Popouts.Popout(ctx, id)
}

// Restore re-docks a popped-out panel.
func (e *Engine) Restore(id string) {
	e.Popouts.Restore(id)
}

// DragOver moves the hover highlight to zone, clearing it elsewhere.
// Ignored when no drag is in progress.
func (e *Engine) DragOver(zone Zone) {
	if _, ok := e.Drag.Dragging(); !ok {
		return
	}
	for z, t := range e.Targets {
		if z == zone {
			t.DragOver()
		} else {
			t.DragLeave()
		}
	}
}

// DropOn completes the current drag on zone. An unknown zone cancels the drag.
func (e *Engine) DropOn(zone Zone) bool {
	t, ok := e.Targets[zone]
	if !ok {
		e.CancelDrag()
		return false
	}
	ok = t.Drop(e.Layout, e.Drag)
	e.clearHover()
	return ok
}

// CancelDrag abandons the current drag; the registry is untouched.
func (e *Engine) CancelDrag() {
	e.Drag.Cancel()
	e.clearHover()
}

func (e *Engine) clearHover() {
	for _, t := range e.Targets {
		t.DragLeave()
	}
}
