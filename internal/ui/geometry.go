package ui

import (
	"flrdash/internal/layout"
)

// Rect is a cell rectangle on the terminal.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const (
	headerRows       = 1
	statusRows       = 1
	collapsedSidebar = 3 // columns of the collapsed sidebar strip
	minLeftCols      = 20
	minZoneRows      = 3 // an empty zone still needs room to drop onto
	titleRows        = 2 // top border + title line act as the drag handle
)

// geometry is the cell layout of one rendered frame. Mouse hit-testing uses
// the geometry of the last frame drawn, so what the user sees is what they hit.
type geometry struct {
	width, height int
	zones         map[layout.Zone]Rect
	panels        map[string]Rect
	order         []string // panel ids in render order
	handle        Rect     // sidebar resize handle; zero when collapsed
}

// computeGeometry tiles the body (between header and footer) into zones and
// panels. extraRows are reserved below the body for transient help.
func computeGeometry(l *layout.Layout, width, height, cellPx, extraRows int) *geometry {
	g := &geometry{
		width:  width,
		height: height,
		zones:  make(map[layout.Zone]Rect, 4),
		panels: make(map[string]Rect),
	}
	bodyY := headerRows
	bodyH := max(height-headerRows-statusRows-extraRows, 0)

	sideW := collapsedSidebar
	if !l.SidebarCollapsed() {
		sideW = l.SidebarWidth() / max(cellPx, 1)
		sideW = min(sideW, width-minLeftCols)
		sideW = max(sideW, collapsedSidebar)
	}
	sideW = min(sideW, width)
	leftW := width - sideW

	topH := edgeZoneRows(l, layout.ZoneTop, bodyH)
	bottomH := edgeZoneRows(l, layout.ZoneBottom, bodyH)
	if topH+bottomH > bodyH {
		topH = bodyH / 2
		bottomH = bodyH - topH
	}
	mainH := bodyH - topH - bottomH

	g.zones[layout.ZoneTop] = Rect{0, bodyY, leftW, topH}
	g.zones[layout.ZoneMain] = Rect{0, bodyY + topH, leftW, mainH}
	g.zones[layout.ZoneBottom] = Rect{0, bodyY + topH + mainH, leftW, bottomH}
	g.zones[layout.ZoneSidebar] = Rect{leftW, bodyY, sideW, bodyH}

	for _, z := range []layout.Zone{layout.ZoneTop, layout.ZoneMain, layout.ZoneBottom} {
		g.splitHorizontal(z, l.PanelsOf(z))
	}
	if l.SidebarCollapsed() {
		return g
	}
	g.handle = Rect{leftW, bodyY, 1, bodyH}
	// The handle column sits left of the sidebar panels.
	inner := g.zones[layout.ZoneSidebar]
	inner.X++
	inner.W--
	g.splitVertical(inner, l.PanelsOf(layout.ZoneSidebar))
	return g
}

// edgeZoneRows sizes the top and bottom zones: a quarter of the body when
// they hold panels, a thin drop strip otherwise.
func edgeZoneRows(l *layout.Layout, z layout.Zone, bodyH int) int {
	if len(l.PanelsOf(z)) == 0 {
		return min(minZoneRows, bodyH)
	}
	return min(max(bodyH/4, 6), bodyH)
}

func (g *geometry) splitHorizontal(z layout.Zone, ids []string) {
	r := g.zones[z]
	n := len(ids)
	if n == 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	x := r.X
	for i, id := range ids {
		w := r.W / n
		if i == n-1 {
			w = r.X + r.W - x
		}
		g.panels[id] = Rect{x, r.Y, w, r.H}
		g.order = append(g.order, id)
		x += w
	}
}

func (g *geometry) splitVertical(r Rect, ids []string) {
	n := len(ids)
	if n == 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	y := r.Y
	for i, id := range ids {
		h := r.H / n
		if i == n-1 {
			h = r.Y + r.H - y
		}
		g.panels[id] = Rect{r.X, y, r.W, h}
		g.order = append(g.order, id)
		y += h
	}
}

// zoneAt returns the zone under the cell.
func (g *geometry) zoneAt(x, y int) (layout.Zone, bool) {
	for _, z := range layout.Zones() {
		if g.zones[z].Contains(x, y) {
			return z, true
		}
	}
	return "", false
}

// panelAt returns the panel under the cell.
func (g *geometry) panelAt(x, y int) (string, bool) {
	for _, id := range g.order {
		if g.panels[id].Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// titleAt returns the panel whose title bar (drag handle) is under the cell.
func (g *geometry) titleAt(x, y int) (string, bool) {
	id, ok := g.panelAt(x, y)
	if !ok || y >= g.panels[id].Y+titleRows {
		return "", false
	}
	return id, true
}

// onHandle reports whether the cell is on the sidebar resize handle.
func (g *geometry) onHandle(x, y int) bool {
	return g.handle.Contains(x, y)
}
