package layout

import (
	"errors"
	"fmt"
	"sort"
)

// Zone is one of the fixed screen regions that host panels.
type Zone string

const (
	ZoneTop     Zone = "top"
	ZoneMain    Zone = "main"
	ZoneBottom  Zone = "bottom"
	ZoneSidebar Zone = "sidebar"
)

// Zones returns the four zones in render order.
func Zones() []Zone {
	return []Zone{ZoneTop, ZoneMain, ZoneBottom, ZoneSidebar}
}

// Valid reports whether z is one of the four known zones.
func (z Zone) Valid() bool {
	switch z {
	case ZoneTop, ZoneMain, ZoneBottom, ZoneSidebar:
		return true
	}
	return false
}

// ParseZone converts user input ("main", "sidebar", ...) to a Zone.
func ParseZone(s string) (Zone, bool) {
	z := Zone(s)
	return z, z.Valid()
}

// Sidebar width bounds, in pixels.
const (
	MinSidebarWidth     = 280
	MaxSidebarWidth     = 600
	DefaultSidebarWidth = 320
)

var (
	// ErrDuplicatePanel is returned by New when two panels share an ID.
	ErrDuplicatePanel = errors.New("duplicate panel id")
	// ErrUnknownZone is returned by New when a panel is placed outside the four zones.
	ErrUnknownZone = errors.New("unknown zone")
)

// Panel is one dockable widget. Title and Category are opaque to the engine.
type Panel struct {
	ID       string
	Title    string
	Category string // glow colour / category tag
	Visible  bool
	Position Zone
	Order    int
}

// Op names a layout mutation, reported through the change observer.
type Op string

const (
	OpToggle        Op = "toggle"
	OpMove          Op = "move"
	OpSetVisible    Op = "set_visible"
	OpSidebarResize Op = "sidebar_resize"
	OpSidebarToggle Op = "sidebar_toggle"
	OpPopout        Op = "popout"
	OpRestore       Op = "restore"
)

// Change describes one applied mutation.
type Change struct {
	Op      Op
	PanelID string
	Zone    Zone
	Visible bool
	Width   int
}

// Option configures a Layout at construction.
type Option func(*Layout)

// WithSidebarWidth sets the initial sidebar width; out-of-range values are clamped.
func WithSidebarWidth(w int) Option {
	return func(l *Layout) { l.sidebarWidth = clampWidth(w) }
}

// WithOnChange registers an observer called after every applied mutation.
func WithOnChange(fn func(Change)) Option {
	return func(l *Layout) { l.onChange = fn }
}

// Layout is the session-scoped panel registry. It is not safe for concurrent
// use; the host serializes all calls on its event loop.
type Layout struct {
	panels           map[string]*Panel
	popouts          map[string]Surface
	sidebarWidth     int
	sidebarCollapsed bool
	onChange         func(Change)
}

// New builds a Layout from the declarative panel list.
func New(specs []Panel, opts ...Option) (*Layout, error) {
	l := &Layout{
		panels:       make(map[string]*Panel, len(specs)),
		popouts:      make(map[string]Surface),
		sidebarWidth: DefaultSidebarWidth,
	}
	for _, s := range specs {
		if _, dup := l.panels[s.ID]; dup {
			return nil, fmt.Errorf("panel %q: %w", s.ID, ErrDuplicatePanel)
		}
		if !s.Position.Valid() {
			return nil, fmt.Errorf("panel %q in zone %q: %w", s.ID, s.Position, ErrUnknownZone)
		}
		p := s
		l.panels[s.ID] = &p
	}
	for _, o := range opts {
		o(l)
	}
	return l, nil
}

// SetOnChange replaces the change observer. Nil disables notifications.
func (l *Layout) SetOnChange(fn func(Change)) {
	l.onChange = fn
}

func (l *Layout) notify(c Change) {
	if l.onChange != nil {
		l.onChange(c)
	}
}

// GetPanel returns a copy of the panel with the given id.
func (l *Layout) GetPanel(id string) (Panel, bool) {
	p, ok := l.panels[id]
	if !ok {
		return Panel{}, false
	}
	return *p, true
}

// Panels returns copies of all panels sorted by id.
func (l *Layout) Panels() []Panel {
	out := make([]Panel, 0, len(l.panels))
	for _, p := range l.panels {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TogglePanel flips a panel's visibility. Unknown ids are ignored.
func (l *Layout) TogglePanel(id string) {
	p, ok := l.panels[id]
	if !ok {
		return
	}
	p.Visible = !p.Visible
	l.notify(Change{Op: OpToggle, PanelID: id, Zone: p.Position, Visible: p.Visible})
}

// SetVisible sets a panel's visibility. Unknown ids are ignored.
func (l *Layout) SetVisible(id string, visible bool) {
	p, ok := l.panels[id]
	if !ok || p.Visible == visible {
		return
	}
	p.Visible = visible
	l.notify(Change{Op: OpSetVisible, PanelID: id, Zone: p.Position, Visible: visible})
}

// MovePanel docks a panel in zone. A panel that changes zone is ranked after
// every panel already in the target zone, hidden ones included. Moving to the
// current zone, an unknown id, or an unknown zone is a no-op.
func (l *Layout) MovePanel(id string, zone Zone) {
	p, ok := l.panels[id]
	if !ok || !zone.Valid() || p.Position == zone {
		return
	}
	p.Order = l.nextOrder(zone)
	p.Position = zone
	l.notify(Change{Op: OpMove, PanelID: id, Zone: zone, Visible: p.Visible})
}

func (l *Layout) nextOrder(zone Zone) int {
	next, seen := 0, false
	for _, p := range l.panels {
		if p.Position != zone {
			continue
		}
		if !seen || p.Order+1 > next {
			next = p.Order + 1
			seen = true
		}
	}
	return next
}

// PanelsOf returns the ids of the visible panels in zone, ascending by Order.
// Equal orders fall back to id so the result is deterministic.
func (l *Layout) PanelsOf(zone Zone) []string {
	var in []*Panel
	for _, p := range l.panels {
		if p.Position == zone && p.Visible {
			in = append(in, p)
		}
	}
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Order != in[j].Order {
			return in[i].Order < in[j].Order
		}
		return in[i].ID < in[j].ID
	})
	ids := make([]string, len(in))
	for i, p := range in {
		ids[i] = p.ID
	}
	return ids
}

// SidebarWidth returns the stored sidebar width in pixels.
func (l *Layout) SidebarWidth() int {
	return l.sidebarWidth
}

// SidebarCollapsed reports whether the sidebar renders as a minimal strip.
func (l *Layout) SidebarCollapsed() bool {
	return l.sidebarCollapsed
}

// ToggleSidebar flips the collapse flag. The stored width is kept so
// expanding restores it.
func (l *Layout) ToggleSidebar() {
	l.sidebarCollapsed = !l.sidebarCollapsed
	l.notify(Change{Op: OpSidebarToggle, Zone: ZoneSidebar, Visible: !l.sidebarCollapsed, Width: l.sidebarWidth})
}

func (l *Layout) setSidebarWidth(w int) {
	w = clampWidth(w)
	if w == l.sidebarWidth {
		return
	}
	l.sidebarWidth = w
	l.notify(Change{Op: OpSidebarResize, Zone: ZoneSidebar, Width: w})
}

func clampWidth(w int) int {
	return min(max(w, MinSidebarWidth), MaxSidebarWidth)
}

// State is a value copy of everything a Layout holds, for comparison and display.
type State struct {
	Panels           []Panel
	Popped           []string
	SidebarWidth     int
	SidebarCollapsed bool
}

// Snapshot copies the current state.
func (l *Layout) Snapshot() State {
	popped := make([]string, 0, len(l.popouts))
	for id := range l.popouts {
		popped = append(popped, id)
	}
	sort.Strings(popped)
	return State{
		Panels:           l.Panels(),
		Popped:           popped,
		SidebarWidth:     l.sidebarWidth,
		SidebarCollapsed: l.sidebarCollapsed,
	}
}
