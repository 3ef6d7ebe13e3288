package layout

// DragSession carries the payload of the single drag in progress.
// States: idle -> dragging -> idle. Beginning a drag never touches the registry.
type DragSession struct {
	payload  string
	dragging bool
}

// Begin starts dragging panel id. It returns false if a drag is already in
// progress or the id is empty.
func (s *DragSession) Begin(id string) bool {
	if s.dragging || id == "" {
		return false
	}
	s.payload = id
	s.dragging = true
	return true
}

// Dragging returns the id being dragged.
func (s *DragSession) Dragging() (string, bool) {
	return s.payload, s.dragging
}

// IsDragging reports whether id is the panel being dragged.
func (s *DragSession) IsDragging(id string) bool {
	return s.dragging && s.payload == id
}

// Cancel ends the drag without a drop. Equivalent to dropping onto nothing.
func (s *DragSession) Cancel() {
	s.payload = ""
	s.dragging = false
}

// take ends the session and hands out the payload.
func (s *DragSession) take() string {
	id := s.payload
	s.Cancel()
	return id
}

// DropTarget is a zone container accepting dropped panels.
// States: idle -> hover -> idle.
type DropTarget struct {
	Zone  Zone
	hover bool
}

// NewDropTargets returns one drop target per zone, in render order.
func NewDropTargets() map[Zone]*DropTarget {
	out := make(map[Zone]*DropTarget, 4)
	for _, z := range Zones() {
		out[z] = &DropTarget{Zone: z}
	}
	return out
}

// DragOver marks the target as hovered.
func (t *DropTarget) DragOver() {
	t.hover = true
}

// DragLeave clears the hover state.
func (t *DropTarget) DragLeave() {
	t.hover = false
}

// Hovered reports whether a drag is currently over this target.
func (t *DropTarget) Hovered() bool {
	return t.hover
}

// Drop accepts the session's payload and docks that panel in the target's
// zone. The session ends and hover clears either way. It returns true only
// when a known panel was re-docked or was already in the zone; an empty or
// unknown payload leaves the layout untouched.
func (t *DropTarget) Drop(l *Layout, s *DragSession) bool {
	t.hover = false
	if s == nil {
		return false
	}
	id := s.take()
	if id == "" {
		return false
	}
	if _, ok := l.GetPanel(id); !ok {
		return false
	}
	l.MovePanel(id, t.Zone)
	return true
}
