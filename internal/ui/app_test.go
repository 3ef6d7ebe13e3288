package ui

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/logging"
	"flrdash/internal/remote"
)

type testSurface struct {
	id     string
	closed bool
}

func (s *testSurface) ID() string   { return s.id }
func (s *testSurface) Focus() error { return nil }
func (s *testSurface) Close() error {
	s.closed = true
	return nil
}

// testHost hands out surfaces and tracks which are still open.
type testHost struct {
	refuse   error
	surfaces map[string]*testSurface
	live     map[string]bool
}

func (h *testHost) spawn(_ context.Context, p layout.Panel) (layout.Surface, error) {
	if h.refuse != nil {
		return nil, h.refuse
	}
	s := &testSurface{id: "@" + p.ID}
	h.surfaces[p.ID] = s
	h.live[s.id] = true
	return s, nil
}

func (h *testHost) liveness(context.Context) (map[string]bool, error) {
	return h.live, nil
}

type harness struct {
	t    *testing.T
	app  *appModelAdapter
	host *testHost
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	l := newDefaultLayout(t)
	host := &testHost{surfaces: map[string]*testSurface{}, live: map[string]bool{}}
	e := layout.NewEngine(l, layout.NewPopouts(l, layout.SpawnerFunc(host.spawn), host.liveness, nil))
	a := NewAppModel(Options{Engine: e, CellWidthPx: 8})
	h := &harness{t: t, app: a.AsTeaModel().(*appModelAdapter), host: host}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// send delivers msg, then follows any commands that produce app messages.
// Other commands (quit, cursor blink) are dropped.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.app.Update(msg)
	h.resolve(cmd)
	h.app.View()
}

func (h *harness) resolve(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.resolve(c)
		}
	case ActionMsg, ShowPaletteMsg, ShowPanelMenuMsg, FocusNextMsg, FocusPrevMsg, DismissModalMsg:
		_, next := h.app.Update(msg)
		h.resolve(next)
	default:
		// tea.Sequence returns an unexported []tea.Cmd type; run it in order.
		if cmds, ok := asCmds(msg); ok {
			for _, c := range cmds {
				h.resolve(c)
			}
		}
	}
}

// asCmds unwraps bubbletea's unexported sequence message.
func asCmds(msg tea.Msg) ([]tea.Cmd, bool) {
	cmdsType := reflect.TypeOf([]tea.Cmd(nil))
	v := reflect.ValueOf(msg)
	if !v.IsValid() || v.Kind() != reflect.Slice || !v.Type().ConvertibleTo(cmdsType) {
		return nil, false
	}
	return v.Convert(cmdsType).Interface().([]tea.Cmd), true
}

func (h *harness) keys(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func (h *harness) mouse(action tea.MouseAction, button tea.MouseButton, x, y int) {
	h.t.Helper()
	h.send(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
}

func (h *harness) zone(z layout.Zone) []string {
	return h.app.Engine.Layout.PanelsOf(z)
}

func TestApp_DragTitleToSidebar(t *testing.T) {
	h := newHarness(t)
	// csd's title row sits at y=11 in a 120x40 terminal.
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 30, 11)
	if !h.app.Engine.Drag.IsDragging("csd") {
		t.Fatal("press on title should start a drag")
	}
	h.mouse(tea.MouseActionMotion, tea.MouseButtonNone, 100, 25)
	if !h.app.Engine.Targets[layout.ZoneSidebar].Hovered() {
		t.Error("sidebar should be highlighted while hovered")
	}
	if !strings.Contains(h.app.View(), "drag") {
		t.Error("status line should describe the drag")
	}
	h.mouse(tea.MouseActionRelease, tea.MouseButtonNone, 100, 25)

	if got, want := h.zone(layout.ZoneSidebar), []string{"solar", "meta", "csd"}; !slices.Equal(got, want) {
		t.Errorf("sidebar: got %v, want %v", got, want)
	}
	if slices.Contains(h.zone(layout.ZoneMain), "csd") {
		t.Error("csd should have left main")
	}
	if h.app.Engine.Targets[layout.ZoneSidebar].Hovered() {
		t.Error("highlight should clear on drop")
	}
}

func TestApp_DragReleasedOutsideZonesCancels(t *testing.T) {
	h := newHarness(t)
	before := h.app.Engine.Layout.Snapshot()
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 30, 11)
	h.mouse(tea.MouseActionRelease, tea.MouseButtonNone, 30, 0)

	if _, ok := h.app.Engine.Drag.Dragging(); ok {
		t.Error("drag should end")
	}
	if got := h.app.Engine.Layout.Snapshot(); !equalState(got, before) {
		t.Error("layout changed after cancelled drag")
	}
}

func TestApp_EscCancelsDrag(t *testing.T) {
	h := newHarness(t)
	before := h.app.Engine.Layout.Snapshot()
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 30, 11)
	h.mouse(tea.MouseActionMotion, tea.MouseButtonNone, 10, 3)
	h.keys("esc")

	if _, ok := h.app.Engine.Drag.Dragging(); ok {
		t.Error("esc should cancel the drag")
	}
	if h.app.Engine.Targets[layout.ZoneTop].Hovered() {
		t.Error("esc should clear the highlight")
	}
	if !equalState(h.app.Engine.Layout.Snapshot(), before) {
		t.Error("layout changed after esc")
	}
}

func TestApp_ResizeSidebarWithHandle(t *testing.T) {
	h := newHarness(t)
	// Handle column is x=80 with a 40-column (320px) sidebar.
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 80, 5)
	if !h.app.Engine.Sidebar.Resizing() {
		t.Fatal("press on handle should start resizing")
	}
	h.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 60, 5)
	if got := h.app.Engine.Layout.SidebarWidth(); got != 480 {
		t.Errorf("after motion: got %dpx, want 480", got)
	}
	h.mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 0, 5)
	if got := h.app.Engine.Layout.SidebarWidth(); got != layout.MaxSidebarWidth {
		t.Errorf("release far left: got %dpx, want clamp to %d", got, layout.MaxSidebarWidth)
	}
	if h.app.Engine.Sidebar.Resizing() {
		t.Error("release should end resizing")
	}
	h.mouse(tea.MouseActionMotion, tea.MouseButtonNone, 119, 5)
	if got := h.app.Engine.Layout.SidebarWidth(); got != layout.MaxSidebarWidth {
		t.Errorf("motion after release changed width to %d", got)
	}
}

func TestApp_FocusRotation(t *testing.T) {
	h := newHarness(t)
	if h.app.Focus.Current != "regime" {
		t.Fatalf("initial focus: got %q", h.app.Focus.Current)
	}
	h.keys("tab")
	if h.app.Focus.Current != "liquidity" {
		t.Errorf("tab: got %q", h.app.Focus.Current)
	}
	h.keys("shift+tab", "shift+tab")
	if h.app.Focus.Current != "meta" {
		t.Errorf("shift+tab should wrap to the last sidebar panel, got %q", h.app.Focus.Current)
	}
}

func TestApp_LeaderToggleAndMove(t *testing.T) {
	h := newHarness(t)
	// Panels sorted by id: components, csd, liquidity, ...
	h.keys(" ", "t", "2")
	if slices.Contains(h.zone(layout.ZoneMain), "csd") {
		t.Error("SPC t 2 should hide csd")
	}
	h.keys(" ", "t", "2")
	if got, want := h.zone(layout.ZoneMain), []string{"liquidity", "csd", "lppl"}; !slices.Equal(got, want) {
		t.Errorf("toggle twice should restore order: got %v", got)
	}

	h.app.Focus.SetFocus("lppl")
	h.keys(" ", "z", "t")
	if got, want := h.zone(layout.ZoneTop), []string{"regime", "lppl"}; !slices.Equal(got, want) {
		t.Errorf("SPC z t: got %v, want %v", got, want)
	}
}

func TestApp_SidebarToggleKeepsWidthAndFocus(t *testing.T) {
	h := newHarness(t)
	h.app.Focus.SetFocus("solar")
	h.keys(" ", "b")
	if !h.app.Engine.Layout.SidebarCollapsed() {
		t.Fatal("SPC b should collapse the sidebar")
	}
	if h.app.Focus.Current == "solar" {
		t.Error("focus should leave a collapsed sidebar")
	}
	// Clicking the collapsed strip expands it again.
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 118, 10)
	if h.app.Engine.Layout.SidebarCollapsed() {
		t.Error("click on collapsed strip should expand")
	}
	if got := h.app.Engine.Layout.SidebarWidth(); got != layout.DefaultSidebarWidth {
		t.Errorf("width changed across collapse: %d", got)
	}
}

func TestApp_PopoutAndReconcile(t *testing.T) {
	h := newHarness(t)
	h.keys(" ", "o")
	if !h.app.Engine.Popouts.Popped("regime") {
		t.Fatal("SPC o should pop out the focused panel")
	}
	if len(h.zone(layout.ZoneTop)) != 0 {
		t.Error("popped panel must not render docked")
	}
	if h.app.Focus.Current == "regime" {
		t.Error("focus should move off a popped panel")
	}
	if !strings.Contains(h.app.View(), "popped out: regime") {
		t.Error("header should list pop-outs")
	}

	delete(h.host.live, "@regime")
	h.send(tea.FocusMsg{})
	if h.app.Engine.Popouts.Popped("regime") {
		t.Error("closed window should be reconciled on focus")
	}
	if got := h.zone(layout.ZoneTop); !slices.Equal(got, []string{"regime"}) {
		t.Errorf("regime should be re-docked in top, got %v", got)
	}
}

func TestApp_PopoutFailureShowsStatus(t *testing.T) {
	h := newHarness(t)
	h.host.refuse = errors.New("not in tmux")
	h.keys(" ", "o")

	if h.app.Engine.Popouts.Popped("regime") {
		t.Error("failed pop-out must not be recorded")
	}
	if !h.app.StatusIsError || !strings.Contains(h.app.Status, "not in tmux") {
		t.Errorf("status: %q (error=%v)", h.app.Status, h.app.StatusIsError)
	}
	if got := h.zone(layout.ZoneTop); !slices.Equal(got, []string{"regime"}) {
		t.Errorf("regime should stay docked, got %v", got)
	}
	h.keys("tab")
	if h.app.Status != "" {
		t.Error("next key should clear the status")
	}
}

func TestApp_TogglePoppedPanelRestores(t *testing.T) {
	h := newHarness(t)
	h.send(ActionMsg{Action: Action{Kind: ActionPopout, PanelID: "solar"}})
	h.send(ActionMsg{Action: Action{Kind: ActionToggle, PanelID: "solar"}})

	if h.app.Engine.Popouts.Popped("solar") {
		t.Error("toggle should restore a popped-out panel")
	}
	if !h.host.surfaces["solar"].closed {
		t.Error("restore should close the window")
	}
	if !slices.Contains(h.zone(layout.ZoneSidebar), "solar") {
		t.Error("solar should be docked again")
	}
}

func TestApp_PanelMenuMove(t *testing.T) {
	h := newHarness(t)
	h.mouse(tea.MouseActionPress, tea.MouseButtonRight, 30, 15)
	top, ok := h.app.Overlays.Peek()
	if !ok {
		t.Fatal("right click should open the panel menu")
	}
	menu, ok := top.View.(*PanelMenu)
	if !ok || menu.PanelID != "csd" {
		t.Fatalf("expected csd menu, got %T", top.View)
	}
	if a, _ := menu.Selected(); a.Kind != ActionMove || a.Zone != layout.ZoneTop {
		t.Errorf("first entry: got %+v", a)
	}

	h.keys("j", "enter")
	if h.app.Overlays.Len() != 0 {
		t.Error("menu should close after applying")
	}
	if got := h.zone(layout.ZoneBottom); !slices.Equal(got, []string{"components", "csd"}) {
		t.Errorf("bottom: got %v", got)
	}
}

func TestApp_PanelMenuEscCloses(t *testing.T) {
	h := newHarness(t)
	before := h.app.Engine.Layout.Snapshot()
	h.keys("enter")
	if h.app.Overlays.Len() != 1 {
		t.Fatal("enter should open the focused panel's menu")
	}
	h.keys("esc")
	if h.app.Overlays.Len() != 0 {
		t.Error("esc should close the menu")
	}
	if !equalState(h.app.Engine.Layout.Snapshot(), before) {
		t.Error("closing the menu must not change the layout")
	}
}

func TestApp_PaletteRunsFirstCommand(t *testing.T) {
	h := newHarness(t)
	h.keys("ctrl+p")
	top, ok := h.app.Overlays.Peek()
	if !ok {
		t.Fatal("ctrl+p should open the palette")
	}
	if _, ok := top.View.(*PaletteModal); !ok {
		t.Fatalf("expected palette, got %T", top.View)
	}
	// Keys go to the palette, not the dashboard bindings.
	h.keys("q")
	if h.app.Overlays.Len() != 1 {
		t.Fatal("q inside the palette should not close it")
	}
	h.keys("enter")
	if h.app.Overlays.Len() != 0 {
		t.Error("palette should close after running a command")
	}
	if !h.app.Engine.Layout.SidebarCollapsed() {
		t.Error("first palette entry toggles the sidebar")
	}
}

func TestApp_PaletteEscWhileFilteringKeepsPalette(t *testing.T) {
	h := newHarness(t)
	h.keys("ctrl+p")
	// Enter filter mode without following the cursor-blink command.
	h.app.Update(keyMsg("/"))
	top, _ := h.app.Overlays.Peek()
	if !top.View.(*PaletteModal).CapturingInput() {
		t.Fatal("/ should start filtering")
	}
	h.app.Update(keyMsg("esc"))
	if h.app.Overlays.Len() != 1 {
		t.Error("esc while filtering should only clear the filter")
	}
	h.app.Update(keyMsg("esc"))
	if h.app.Overlays.Len() != 0 {
		t.Error("second esc should close the palette")
	}
}

func TestApp_RemoteCommands(t *testing.T) {
	h := newHarness(t)
	h.send(RemoteCommandMsg{Command: remote.Command{Op: remote.OpMove, Panel: "solar", Zone: layout.ZoneMain}})
	if got := h.zone(layout.ZoneMain); !slices.Equal(got, []string{"liquidity", "csd", "lppl", "solar"}) {
		t.Errorf("main: got %v", got)
	}
	h.send(RemoteCommandMsg{Command: remote.Command{Op: remote.OpSidebar}})
	if !h.app.Engine.Layout.SidebarCollapsed() {
		t.Error("remote sidebar command should collapse")
	}
	before := h.app.Engine.Layout.Snapshot()
	h.send(RemoteCommandMsg{Command: remote.Command{Op: remote.OpToggle, Panel: "ghost"}})
	h.send(RemoteCommandMsg{Command: remote.Command{Op: "explode"}})
	if !equalState(h.app.Engine.Layout.Snapshot(), before) {
		t.Error("unknown panel or op must not change the layout")
	}
}

func TestApp_ViewRendersPanels(t *testing.T) {
	h := newHarness(t)
	out := h.app.View()
	for _, want := range []string{"FLR Dashboard", "Regime Score", "Net Liquidity", "Solar Cycle", "no data"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	h.keys(" ")
	if !strings.Contains(h.app.View(), "Toggle sidebar") {
		t.Error("leader help should list SPC bindings")
	}
}

func equalState(a, b layout.State) bool {
	if a.SidebarWidth != b.SidebarWidth || a.SidebarCollapsed != b.SidebarCollapsed {
		return false
	}
	return slices.Equal(a.Panels, b.Panels) && slices.Equal(a.Popped, b.Popped)
}

func TestApp_NoticeActionOnlySetsStatus(t *testing.T) {
	h := newHarness(t)
	before := h.app.Engine.Layout.Snapshot()
	h.send(ActionMsg{Action: Action{Kind: ActionNotice, Text: "export is not available"}})
	if h.app.Status != "export is not available" || h.app.StatusIsError {
		t.Errorf("status: %q (error=%v)", h.app.Status, h.app.StatusIsError)
	}
	if !equalState(h.app.Engine.Layout.Snapshot(), before) {
		t.Error("notice must not change the layout")
	}
}

func TestApp_LeaderSpaceOpensPalette(t *testing.T) {
	h := newHarness(t)
	h.keys(" ", " ")
	if h.app.Overlays.Len() != 1 {
		t.Error("SPC SPC should open the palette")
	}
}

func TestApp_OverlayEndsResize(t *testing.T) {
	h := newHarness(t)
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 80, 5)
	h.keys("ctrl+p")
	if h.app.Engine.Sidebar.Resizing() {
		t.Fatal("opening the palette should end the resize")
	}
	h.mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 60, 5)
	h.keys("esc")

	h.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 100, 5)
	if got := h.app.Engine.Layout.SidebarWidth(); got != layout.DefaultSidebarWidth {
		t.Errorf("motion after the gesture ended resized the sidebar to %dpx", got)
	}
}

func TestApp_OverlayEndsDrag(t *testing.T) {
	h := newHarness(t)
	before := h.app.Engine.Layout.Snapshot()
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 30, 11)
	h.mouse(tea.MouseActionMotion, tea.MouseButtonNone, 100, 25)
	h.keys("ctrl+p")
	if _, ok := h.app.Engine.Drag.Dragging(); ok {
		t.Fatal("opening the palette should cancel the drag")
	}
	if h.app.Engine.Targets[layout.ZoneSidebar].Hovered() {
		t.Error("cancelling should clear the highlight")
	}
	h.mouse(tea.MouseActionRelease, tea.MouseButtonNone, 100, 25)
	h.keys("esc")
	h.mouse(tea.MouseActionRelease, tea.MouseButtonNone, 100, 25)

	if !equalState(h.app.Engine.Layout.Snapshot(), before) {
		t.Errorf("stale drag changed the layout: sidebar %v", h.zone(layout.ZoneSidebar))
	}
}

func TestApp_PanelMenuEndsDrag(t *testing.T) {
	h := newHarness(t)
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 30, 11)
	h.send(ShowPanelMenuMsg{PanelID: "lppl"})
	if _, ok := h.app.Engine.Drag.Dragging(); ok {
		t.Error("opening the panel menu should cancel the drag")
	}
}

func TestApp_BlurEndsResize(t *testing.T) {
	h := newHarness(t)
	h.mouse(tea.MouseActionPress, tea.MouseButtonLeft, 80, 5)
	h.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 60, 5)
	h.send(tea.BlurMsg{})
	if h.app.Engine.Sidebar.Resizing() {
		t.Fatal("losing focus should end the resize")
	}
	if got := h.app.Engine.Layout.SidebarWidth(); got != 480 {
		t.Errorf("width: got %dpx, want the last value 480", got)
	}
	h.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 100, 5)
	if got := h.app.Engine.Layout.SidebarWidth(); got != 480 {
		t.Errorf("motion after blur changed width to %d", got)
	}
}

func TestApp_SnapshotReload(t *testing.T) {
	h := newHarness(t)
	h.send(SnapshotMsg{Snapshot: indicators.Snapshot{RecordCount: 2950}})
	if !strings.Contains(h.app.View(), "2950") {
		t.Error("docked panels should show the reloaded snapshot")
	}

	h.send(SnapshotMsg{Err: errors.New("parse snapshot: unexpected EOF")})
	if !h.app.StatusIsError || !strings.Contains(h.app.Status, "unexpected EOF") {
		t.Errorf("status: %q (error=%v)", h.app.Status, h.app.StatusIsError)
	}
	if h.app.Snapshot.RecordCount != 2950 {
		t.Error("a failed reload should keep the last good snapshot")
	}
}

func TestApp_FocusChangesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	l := newDefaultLayout(t)
	a := NewAppModel(Options{Engine: layout.NewEngine(l, nil), Log: logging.New(&buf, true)})
	m := a.AsTeaModel()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(FocusNextMsg{})

	if !strings.Contains(buf.String(), "from=regime to=liquidity") {
		t.Errorf("focus move not logged:\n%s", buf.String())
	}
}
