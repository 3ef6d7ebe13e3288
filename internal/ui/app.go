package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/logging"
	"flrdash/internal/remote"
	"flrdash/internal/telemetry"
)

const (
	popoutTimeout    = 3 * time.Second
	reconcileTimeout = 2 * time.Second
	defaultCellPx    = 8
)

// Options configures NewAppModel.
type Options struct {
	Engine            *layout.Engine
	Snapshot          indicators.Snapshot
	Tracer            *telemetry.Tracer // nil disables tracing
	Log               *slog.Logger
	CellWidthPx       int           // pixels per terminal column for sidebar sizing
	ReconcileInterval time.Duration // 0 disables periodic pop-out checks
}

// AppModel is the root model. It is the single writer to the layout engine:
// every surface (keys, mouse, palette, menus, remote) funnels into apply.
type AppModel struct {
	Engine            *layout.Engine
	Snapshot          indicators.Snapshot
	KeyHandler        *KeyHandler
	Overlays          OverlayStack
	Focus             FocusManager
	Tracer            *telemetry.Tracer
	Log               *slog.Logger
	CellWidthPx       int
	ReconcileInterval time.Duration

	// Status is a one-line message replacing the key hints until the next key.
	Status        string
	StatusIsError bool

	width, height int
	geom          *geometry // geometry of the last frame, for hit-testing
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model and binds keys.
func NewAppModel(opts Options) *AppModel {
	a := &AppModel{
		Engine:            opts.Engine,
		Snapshot:          opts.Snapshot,
		Tracer:            opts.Tracer,
		Log:               opts.Log,
		CellWidthPx:       opts.CellWidthPx,
		ReconcileInterval: opts.ReconcileInterval,
	}
	if a.Log == nil {
		a.Log = logging.Discard()
	}
	if a.CellWidthPx <= 0 {
		a.CellWidthPx = defaultCellPx
	}
	a.Engine.Layout.SetOnChange(a.observe)
	a.Focus.OnChange = func(from, to string) {
		a.Log.Debug("focus", "from", from, "to", to)
	}
	a.KeyHandler = NewKeyHandler(a.bindKeys())
	a.syncFocus()
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (a *AppModel) bindKeys() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+p", emit(ShowPaletteMsg{}), "Command palette")
	reg.BindWithDesc("SPC p", emit(ShowPaletteMsg{}), "Command palette")
	reg.BindWithDesc("SPC SPC", emit(ShowPaletteMsg{}), "Command palette")
	reg.BindWithDesc("tab", emit(FocusNextMsg{}), "Next panel")
	reg.BindWithDesc("shift+tab", emit(FocusPrevMsg{}), "Previous panel")
	reg.BindWithDesc("enter", emit(ShowPanelMenuMsg{}), "Panel menu")
	reg.BindWithDesc("SPC m", emit(ShowPanelMenuMsg{}), "Panel menu")
	reg.BindWithDesc("SPC b", actionCmd(Action{Kind: ActionSidebar}), "Toggle sidebar")
	reg.BindWithDesc("SPC h", actionCmd(Action{Kind: ActionToggle}), "Hide panel")
	reg.BindWithDesc("SPC o", actionCmd(Action{Kind: ActionPopout}), "Pop out panel")
	reg.BindWithDesc("SPC r", actionCmd(Action{Kind: ActionRestoreAll}), "Restore pop-outs")
	for _, z := range layout.Zones() {
		reg.BindWithDesc("SPC z "+string(z[0]), actionCmd(Action{Kind: ActionMove, Zone: z}), string(z))
	}
	// SPC t <n> toggles the nth panel in id order; ids are fixed for the session.
	for i, p := range a.Engine.Layout.Panels() {
		if i >= 9 {
			break
		}
		reg.BindWithDesc("SPC t "+strconv.Itoa(i+1), actionCmd(Action{Kind: ActionToggle, PanelID: p.ID}), p.Title)
	}
	return reg
}

// observe receives every applied layout mutation.
func (a *AppModel) observe(c layout.Change) {
	level := slog.LevelInfo
	if c.Op == layout.OpSidebarResize {
		level = slog.LevelDebug
	}
	a.Log.Log(context.Background(), level, "layout change",
		"op", c.Op, "panel", c.PanelID, "zone", c.Zone, "visible", c.Visible, "width", c.Width)
	a.Tracer.RecordChange(context.Background(), c)
	a.syncFocus()
}

// focusOrder lists docked visible panels top to bottom, left to right.
func (a *AppModel) focusOrder() []string {
	var order []string
	for _, z := range layout.Zones() {
		if z == layout.ZoneSidebar && a.Engine.Layout.SidebarCollapsed() {
			continue
		}
		order = append(order, a.Engine.Layout.PanelsOf(z)...)
	}
	return order
}

func (a *AppModel) syncFocus() {
	a.Focus.Sync(a.focusOrder())
}

func (a *AppModel) setStatus(s string, isErr bool) {
	a.Status, a.StatusIsError = s, isErr
}

// needsPanel reports whether an action targets a single panel.
func (k ActionKind) needsPanel() bool {
	switch k {
	case ActionSidebar, ActionRestoreAll, ActionNotice:
		return false
	}
	return true
}

// apply runs one action through the engine's command set.
func (a *AppModel) apply(act Action) {
	id := act.PanelID
	if act.Kind.needsPanel() && id == "" {
		id = a.Focus.Current
		if id == "" {
			a.setStatus("no panel focused", true)
			return
		}
	}
	var cmds layout.Commands = a.Engine
	switch act.Kind {
	case ActionToggle:
		cmds.TogglePanel(id)
	case ActionMove:
		cmds.MovePanel(id, act.Zone)
	case ActionSidebar:
		cmds.ToggleSidebar()
	case ActionRestore:
		cmds.Restore(id)
	case ActionRestoreAll:
		a.Engine.Popouts.RestoreAll()
	case ActionPopout:
		ctx, cancel := context.WithTimeout(context.Background(), popoutTimeout)
		defer cancel()
		if err := cmds.Popout(ctx, id); err != nil {
			a.Tracer.RecordFailure(ctx, layout.OpPopout, id, err)
			a.setStatus(fmt.Sprintf("pop out %s failed: %v", id, err), true)
		}
	case ActionNotice:
		a.setStatus(act.Text, false)
	default:
		a.Log.Warn("unknown action", "kind", act.Kind)
	}
}

// actionFromCommand maps a remote command onto an Action.
func actionFromCommand(c remote.Command) (Action, bool) {
	switch c.Op {
	case remote.OpToggle:
		return Action{Kind: ActionToggle, PanelID: c.Panel}, true
	case remote.OpMove:
		return Action{Kind: ActionMove, PanelID: c.Panel, Zone: c.Zone}, true
	case remote.OpPopout:
		return Action{Kind: ActionPopout, PanelID: c.Panel}, true
	case remote.OpRestore:
		return Action{Kind: ActionRestore, PanelID: c.Panel}, true
	case remote.OpSidebar:
		return Action{Kind: ActionSidebar}, true
	}
	return Action{}, false
}

// reconcile re-docks panels whose pop-out windows were closed outside the app.
func (a *AppModel) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()
	if restored := a.Engine.Popouts.Reconcile(ctx); len(restored) > 0 {
		a.setStatus(fmt.Sprintf("re-docked %v (window closed)", restored), false)
	}
}

func (a *AppModel) tickCmd() tea.Cmd {
	if a.ReconcileInterval <= 0 {
		return nil
	}
	return tea.Tick(a.ReconcileInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *AppModel) openPanelMenu(id string) {
	if id == "" {
		id = a.Focus.Current
	}
	p, ok := a.Engine.Layout.GetPanel(id)
	if !ok {
		return
	}
	a.Focus.SetFocus(id)
	a.endGestures()
	a.Overlays.Push(Overlay{View: NewPanelMenu(p, a.Engine.Popouts.Popped(id)), Dismiss: "esc"})
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.tickCmd()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.FocusMsg:
		a.reconcile()
		return a, nil
	case tea.BlurMsg:
		// The release may happen in another window and never reach us.
		a.endGestures()
		return a, nil
	case tickMsg:
		a.reconcile()
		return a, a.tickCmd()
	case SnapshotMsg:
		if msg.Err != nil {
			a.setStatus("reload snapshot: "+msg.Err.Error(), true)
			return a, nil
		}
		a.Snapshot = msg.Snapshot
		return a, nil
	case ActionMsg:
		a.apply(msg.Action)
		return a, nil
	case RemoteCommandMsg:
		act, ok := actionFromCommand(msg.Command)
		if !ok {
			a.Log.Warn("ignoring remote command", "op", msg.Command.Op)
			return a, nil
		}
		a.Log.Info("remote command", "op", msg.Command.Op, "panel", msg.Command.Panel)
		a.apply(act)
		return a, nil
	case ShowPaletteMsg:
		a.KeyHandler.Reset()
		a.endGestures()
		a.Overlays.Push(Overlay{View: NewPaletteModal(a.Engine, a.width, a.height), Dismiss: "esc"})
		return a, nil
	case ShowPanelMenuMsg:
		a.openPanelMenu(msg.PanelID)
		return a, nil
	case FocusNextMsg:
		a.Focus.Next()
		return a, nil
	case FocusPrevMsg:
		a.Focus.Prev()
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.MouseMsg:
		return a, a.handleMouse(msg)
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	// Internal messages from overlay components (e.g. list filtering).
	cmd, _ := a.Overlays.UpdateTop(msg)
	return a, cmd
}

// inputCapturer is implemented by overlays that own the keyboard at times,
// such as while typing a filter.
type inputCapturer interface {
	CapturingInput() bool
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	if s == "ctrl+c" {
		return tea.Quit
	}
	a.setStatus("", false)

	if top, ok := a.Overlays.Peek(); ok {
		capturing := false
		if c, ok := top.View.(inputCapturer); ok {
			capturing = c.CapturingInput()
		}
		if top.IsDismissKey(s) && !capturing {
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}

	if s == "esc" {
		if _, ok := a.Engine.Drag.Dragging(); ok {
			a.Engine.CancelDrag()
			return nil
		}
	}
	_, cmd := a.KeyHandler.Handle(msg)
	return cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading…"
	}
	a.geom = computeGeometry(a.Engine.Layout, a.width, a.height, a.CellWidthPx, helpRows(a.KeyHandler, a.width))
	return a.renderDashboard(a.geom)
}
