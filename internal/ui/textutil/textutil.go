// Package textutil provides unicode-aware text helpers for panel rendering.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate shortens s to at most maxWidth terminal columns, ending in an
// ellipsis when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// LabelValue lays out label and value on one line of exactly width columns:
// label left, value right, separated by at least one space. The label gives
// way first when space runs out.
func LabelValue(label, value string, width int) string {
	if width <= 0 {
		return ""
	}
	vw := runewidth.StringWidth(value)
	if vw >= width {
		return Truncate(value, width)
	}
	label = Truncate(label, width-vw-1)
	gap := width - runewidth.StringWidth(label) - vw
	return label + strings.Repeat(" ", gap) + value
}

// Center pads s with spaces to be centred in width columns.
func Center(s string, width int) string {
	s = Truncate(s, width)
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
