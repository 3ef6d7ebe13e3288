package ui

import (
	"fmt"
	"strings"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/ui/textutil"
)

// DefaultPanels is the dashboard's initial panel set. Panel ids double as
// indicator content kinds.
func DefaultPanels() []layout.Panel {
	return []layout.Panel{
		{ID: indicators.KindRegime, Title: "Regime Score", Category: "risk", Visible: true, Position: layout.ZoneTop, Order: 0},
		{ID: indicators.KindLiquidity, Title: "Net Liquidity", Category: "liquidity", Visible: true, Position: layout.ZoneMain, Order: 0},
		{ID: indicators.KindCSD, Title: "Critical Slowing Down", Category: "stats", Visible: true, Position: layout.ZoneMain, Order: 1},
		{ID: indicators.KindLPPL, Title: "Bubble Detection (LPPL)", Category: "stats", Visible: true, Position: layout.ZoneMain, Order: 2},
		{ID: indicators.KindComponents, Title: "Score Components", Category: "risk", Visible: true, Position: layout.ZoneBottom, Order: 0},
		{ID: indicators.KindSolar, Title: "Solar Cycle", Category: "external", Visible: true, Position: layout.ZoneSidebar, Order: 0},
		{ID: indicators.KindMeta, Title: "Data Sources", Category: "meta", Visible: true, Position: layout.ZoneSidebar, Order: 1},
	}
}

// renderRows lays out indicator rows in a width x height block. Rows that do
// not fit are dropped; the last visible row then reports how many were cut.
func renderRows(rows []indicators.Row, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(rows) > height {
		cut := len(rows) - height + 1
		rows = append(rows[:height-1:height-1], indicators.Row{Label: textutil.Ellipsis, Value: fmt.Sprintf("%d more", cut)})
	}
	lines := make([]string, 0, height)
	for _, r := range rows {
		lines = append(lines, textutil.LabelValue(r.Label, r.Value, width))
	}
	return strings.Join(lines, "\n")
}
