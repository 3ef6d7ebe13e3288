package ui

import (
	"time"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/remote"

	tea "github.com/charmbracelet/bubbletea"
)

// ActionKind names a layout command.
type ActionKind string

const (
	ActionToggle     ActionKind = "toggle"
	ActionMove       ActionKind = "move"
	ActionPopout     ActionKind = "popout"
	ActionRestore    ActionKind = "restore"
	ActionRestoreAll ActionKind = "restore-all"
	ActionSidebar    ActionKind = "sidebar"
	ActionNotice     ActionKind = "notice" // only sets the status line
)

// Action is one layout command, whichever surface it came from.
// An empty PanelID means the focused panel.
type Action struct {
	Kind    ActionKind
	PanelID string
	Zone    layout.Zone
	Text    string // status text for ActionNotice
}

// ActionMsg asks the app to apply an Action.
type ActionMsg struct {
	Action Action
}

// RemoteCommandMsg carries a command received by the remote server.
type RemoteCommandMsg struct {
	Command remote.Command
}

// SnapshotMsg delivers a snapshot reloaded after the data file changed.
// On Err the models keep showing the last good snapshot.
type SnapshotMsg struct {
	Snapshot indicators.Snapshot
	Err      error
}

// ShowPaletteMsg opens the command palette.
type ShowPaletteMsg struct{}

// ShowPanelMenuMsg opens the context menu for a panel ("" = focused panel).
type ShowPanelMenuMsg struct {
	PanelID string
}

// FocusNextMsg and FocusPrevMsg rotate panel focus.
type (
	FocusNextMsg struct{}
	FocusPrevMsg struct{}
)

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}

// tickMsg drives periodic pop-out reconciliation.
type tickMsg time.Time

// actionCmd returns a command that emits a.
func actionCmd(a Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}
