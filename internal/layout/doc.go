// Package layout is the dockable panel engine behind the dashboard.
//
// A Layout owns every panel's zone, rank and visibility, the sidebar width
// and collapse flag, and the handles of panels popped out to external
// surfaces. Callers mutate it only through the named operations:
//   - Registry: TogglePanel, MovePanel, SetVisible, GetPanel
//   - Zones: PanelsOf derives the ordered visible panels of one zone
//   - DragSession / DropTarget: two-phase re-docking (begin drag, accept drop)
//   - SidebarController: press/move/release resize gesture, clamped width
//   - Popouts: spawn, restore and reconcile external surfaces
//
// Nothing in this package blocks or starts goroutines. The host is expected
// to call into it from a single event loop.
package layout
