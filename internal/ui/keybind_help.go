package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var helpBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(ColorAccent)).
	Padding(0, 1)

// RenderKeybindHelp renders the transient hint bar shown after SPC.
func RenderKeybindHelp(h *KeyHandler, width int) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	km := NewKeyMap(h.Registry, h)
	bindings := km.ShortHelp()
	if len(bindings) == 0 {
		return ""
	}
	m := help.New()
	m.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	m.Styles.ShortDesc = Styles.Hint
	m.Styles.ShortSeparator = Styles.Hint

	prefix := h.LeaderSeq
	if seq := h.CurrentSeq(); seq != "" {
		prefix = seq
	}
	// The box wraps long hint lists rather than letting help truncate them.
	return helpBox.Width(max(width-2, 0)).Render(Styles.Muted.Render(prefix) + " " + m.ShortHelpView(bindings))
}

// helpRows is the height the hint bar takes when shown.
func helpRows(h *KeyHandler, width int) int {
	s := RenderKeybindHelp(h, width)
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}
