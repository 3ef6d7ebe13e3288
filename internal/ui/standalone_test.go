package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/indicators"
	"flrdash/internal/layout"
)

func TestStandalone_RendersPanelAndQuits(t *testing.T) {
	p := layout.Panel{ID: indicators.KindSolar, Title: "Solar Cycle", Category: "external"}
	m := NewStandaloneModel(p, indicators.Snapshot{})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})

	out := m.View()
	if !strings.Contains(out, "Solar Cycle") || !strings.Contains(out, "no data") {
		t.Errorf("view missing title or placeholder:\n%s", out)
	}
	if got := strings.Count(out, "\n") + 1; got != 12 {
		t.Errorf("view height: got %d lines, want 12", got)
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}
}

func TestStandalone_SnapshotUpdates(t *testing.T) {
	p := layout.Panel{ID: indicators.KindMeta, Title: "Data Sources"}
	m := NewStandaloneModel(p, indicators.Snapshot{})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})

	m.Update(SnapshotMsg{Snapshot: indicators.Snapshot{RecordCount: 2950}})
	if !strings.Contains(m.View(), "2950") {
		t.Errorf("reloaded snapshot not rendered:\n%s", m.View())
	}

	m.Update(SnapshotMsg{Err: errors.New("bad json")})
	out := m.View()
	if !strings.Contains(out, "reload: bad json") {
		t.Error("reload error should show in the status line")
	}
	if !strings.Contains(out, "2950") {
		t.Error("a failed reload should keep the last good snapshot")
	}
}
