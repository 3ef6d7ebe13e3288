// Package ui renders the dockable dashboard with Bubble Tea.
//
// The root AppModel owns a layout.Engine and is the only writer to it: keys,
// mouse gestures, the command palette, panel menus and remote commands all
// become messages that the model applies through layout.Commands.
//
// Building blocks:
//   - View: an Elm-style sub-model (Init/Update/View) hosted in an overlay
//   - OverlayStack: modal views; the top one receives input first
//   - FocusManager: tab order over the docked panels
//   - KeybindRegistry/KeyHandler: single keys and SPC-leader sequences
package ui
