package layout

// SidebarController drives the sidebar resize gesture.
// States: idle -> resizing -> idle.
//
// While Resizing is true the host must feed it every pointer event, not only
// those over the handle, and stop the moment Release returns.
type SidebarController struct {
	layout   *Layout
	resizing bool
}

// NewSidebarController binds a controller to l.
func NewSidebarController(l *Layout) *SidebarController {
	return &SidebarController{layout: l}
}

// Press starts a resize gesture from the handle.
func (c *SidebarController) Press() {
	c.resizing = true
}

// Resizing reports whether a gesture is in progress.
func (c *SidebarController) Resizing() bool {
	return c.resizing
}

// Move sets the sidebar width from the pointer position. The sidebar is
// anchored to the right edge, so the width is the distance from the pointer to
// the viewport's right edge, clamped to [MinSidebarWidth, MaxSidebarWidth].
// Ignored when idle.
func (c *SidebarController) Move(pointerX, viewportWidth int) {
	if !c.resizing {
		return
	}
	c.layout.setSidebarWidth(viewportWidth - pointerX)
}

// Release ends the gesture, keeping the last clamped width.
func (c *SidebarController) Release() {
	c.resizing = false
}
