package ui

import "slices"

// FocusManager tracks the focused panel and rotates focus in tab order.
// The order is rebuilt from the layout after every change, so focus can
// point at a panel that has since been hidden; Sync repairs that.
type FocusManager struct {
	Current  string
	Order    []string
	OnChange func(from, to string)
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}

func (f *FocusManager) step(delta int) string {
	n := len(f.Order)
	if n == 0 {
		f.set("")
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + delta + n) % n
	}
	f.set(f.Order[idx])
	return f.Current
}

// Next moves focus to the following panel, wrapping around.
func (f *FocusManager) Next() string { return f.step(1) }

// Prev moves focus to the preceding panel, wrapping around.
func (f *FocusManager) Prev() string { return f.step(-1) }

// SetFocus focuses id if it is in the order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

// Sync replaces the tab order. Focus stays put when the current panel is
// still present, otherwise it falls to the first panel.
func (f *FocusManager) Sync(order []string) {
	f.Order = order
	if slices.Contains(order, f.Current) {
		return
	}
	if len(order) == 0 {
		f.set("")
		return
	}
	f.set(order[0])
}
