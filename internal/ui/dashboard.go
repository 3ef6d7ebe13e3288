package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/ui/textutil"
)

const dragMarker = "✥ "

// blank fills a w x h block with spaces.
func blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// box renders content in a rounded border of exactly w x h cells.
func box(style lipgloss.Style, content string, w, h int) string {
	if w < 3 || h < 3 {
		return blank(w, h)
	}
	return style.Width(w - 2).Height(h - 2).MaxWidth(w).MaxHeight(h).Render(content)
}

// renderPanel draws one docked panel: title row, then indicator rows.
func (a *AppModel) renderPanel(p layout.Panel, r Rect, zoneHovered bool) string {
	innerW, innerH := r.W-2, r.H-2
	if innerW <= 0 || innerH <= 0 {
		return blank(r.W, r.H)
	}
	dragging := a.Engine.Drag.IsDragging(p.ID)
	focused := a.Focus.Current == p.ID

	title := p.Title
	if dragging {
		title = dragMarker + title
	}
	titleStyle := Styles.Normal.Bold(true)
	if focused {
		titleStyle = Styles.Title
	}
	content := titleStyle.Render(textutil.Truncate(title, innerW))
	if innerH > 1 {
		content += "\n" + renderRows(indicators.Rows(a.Snapshot, p.ID), innerW, innerH-1)
	}

	border := CategoryColor(p.Category)
	switch {
	case dragging, zoneHovered:
		border = lipgloss.Color(ColorHighlight)
	case focused:
		border = lipgloss.Color(ColorAccent)
	}
	return box(Styles.Panel.BorderForeground(border), content, r.W, r.H)
}

// renderDropStrip draws an empty zone so it can still receive drops.
func (a *AppModel) renderDropStrip(z layout.Zone, r Rect, hovered bool) string {
	label := string(z)
	if _, ok := a.Engine.Drag.Dragging(); ok {
		label = "drop → " + label
	}
	style := Styles.DropZone
	if hovered {
		style = Styles.Panel.BorderForeground(lipgloss.Color(ColorHighlight)).Foreground(lipgloss.Color(ColorHighlight))
	}
	if r.W < 3 || r.H < 3 {
		return blank(r.W, r.H)
	}
	return box(style, textutil.Center(label, r.W-2), r.W, r.H)
}

func (a *AppModel) renderZone(g *geometry, z layout.Zone, join func(lipgloss.Position, ...string) string, pos lipgloss.Position) string {
	r := g.zones[z]
	if z == layout.ZoneSidebar {
		// Sidebar panels sit right of the handle column.
		r = Rect{r.X + 1, r.Y, r.W - 1, r.H}
	}
	hovered := a.Engine.Targets[z].Hovered()
	ids := a.Engine.Layout.PanelsOf(z)
	if len(ids) == 0 {
		return a.renderDropStrip(z, r, hovered)
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		p, _ := a.Engine.Layout.GetPanel(id)
		parts = append(parts, a.renderPanel(p, g.panels[id], hovered))
	}
	return join(pos, parts...)
}

func (a *AppModel) renderSidebar(g *geometry) string {
	r := g.zones[layout.ZoneSidebar]
	if r.W <= 0 || r.H <= 0 {
		return ""
	}
	if a.Engine.Layout.SidebarCollapsed() {
		lines := make([]string, r.H)
		for i := range lines {
			lines[i] = strings.Repeat(" ", r.W)
		}
		lines[0] = textutil.Center("‹", r.W)
		return Styles.Handle.Render(strings.Join(lines, "\n"))
	}
	handleStyle := Styles.Handle
	if a.Engine.Sidebar.Resizing() {
		handleStyle = Styles.Selected
	}
	handle := handleStyle.Render(strings.TrimSuffix(strings.Repeat("┃\n", r.H), "\n"))
	if r.W == 1 {
		return handle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, handle, a.renderZone(g, layout.ZoneSidebar, lipgloss.JoinVertical, lipgloss.Left))
}

func (a *AppModel) renderHeader(width int) string {
	left := Styles.Title.Render(" FLR Dashboard")
	right := fmt.Sprintf("sidebar %dpx ", a.Engine.Layout.SidebarWidth())
	if ids := a.Engine.Popouts.PoppedIDs(); len(ids) > 0 {
		right = "popped out: " + strings.Join(ids, ", ") + "  " + right
	}
	if a.Engine.Layout.SidebarCollapsed() {
		right = strings.Replace(right, "sidebar", "sidebar (collapsed)", 1)
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return textutil.Truncate(left, width)
	}
	return left + strings.Repeat(" ", gap) + Styles.Muted.Render(right)
}

func (a *AppModel) renderStatus(width int) string {
	if a.Status != "" {
		style := Styles.Status
		if a.StatusIsError {
			style = Styles.StatusError
		}
		return style.Render(textutil.Truncate(" "+a.Status, width))
	}
	hint := " SPC commands · ctrl+p palette · tab focus · drag titles to re-dock · q quit"
	if id, ok := a.Engine.Drag.Dragging(); ok {
		hint = " dragging " + id + ": release over a zone, esc cancels"
	} else if a.Engine.Sidebar.Resizing() {
		hint = " resizing sidebar: release to finish"
	}
	return Styles.Hint.Render(textutil.Truncate(hint, width))
}

// renderDashboard composes header, zones, sidebar, help bar and status line.
func (a *AppModel) renderDashboard(g *geometry) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		a.renderZone(g, layout.ZoneTop, lipgloss.JoinHorizontal, lipgloss.Top),
		a.renderZone(g, layout.ZoneMain, lipgloss.JoinHorizontal, lipgloss.Top),
		a.renderZone(g, layout.ZoneBottom, lipgloss.JoinHorizontal, lipgloss.Top),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, a.renderSidebar(g))

	bodyH := g.zones[layout.ZoneSidebar].H
	if top, ok := a.Overlays.Peek(); ok {
		body = lipgloss.Place(g.width, bodyH, lipgloss.Center, lipgloss.Center, top.View.View())
	}

	sections := []string{a.renderHeader(g.width), body}
	if h := RenderKeybindHelp(a.KeyHandler, g.width); h != "" {
		sections = append(sections, h)
	}
	sections = append(sections, a.renderStatus(g.width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
