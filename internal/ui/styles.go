package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, focus
	ColorHighlight = "205" // Magenta - selection, drop hover
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - hints, hidden state
	ColorText      = "252" // Light gray - normal text
	ColorDim       = "238" // Dark gray - idle borders
	ColorWarning   = "208" // Orange - warnings
)

// categoryColors maps a panel's category tag to its glow colour.
var categoryColors = map[string]string{
	"risk":      "203",
	"liquidity": "75",
	"stats":     "141",
	"external":  "220",
	"meta":      ColorMuted,
}

// CategoryColor returns the border colour for a panel category.
func CategoryColor(category string) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(ColorDim)
}

// Styles contains shared style definitions used across views and overlays.
var Styles = struct {
	Title        lipgloss.Style // Bold accent - header and overlay titles
	TitleWarning lipgloss.Style // Bold danger - error titles
	Panel        lipgloss.Style // Docked panel box; border colour set per category
	DropZone     lipgloss.Style // Empty zone placeholder
	Handle       lipgloss.Style // Sidebar resize handle
	Box          lipgloss.Style // Overlay box
	Selected     lipgloss.Style // Highlighted/selected items
	Muted        lipgloss.Style // Dimmed text
	Normal       lipgloss.Style // Normal text
	Hint         lipgloss.Style // Help/hint text
	Status       lipgloss.Style // Status line
	StatusError  lipgloss.Style // Status line on failure
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()),
	DropZone: lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder()).
		Foreground(lipgloss.Color(ColorDim)),
	Handle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
}

// NewCompactListDelegate returns a delegate with zero spacing and shared styles.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.SelectedTitle = Styles.Selected.PaddingLeft(1)
	d.Styles.SelectedDesc = Styles.Muted.PaddingLeft(1)
	d.Styles.NormalTitle = Styles.Normal.PaddingLeft(2)
	d.Styles.NormalDesc = Styles.Muted.PaddingLeft(2)
	return d
}
