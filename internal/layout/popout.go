package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"flrdash/internal/logging"
)

// ErrNoSpawner is returned by Popout when the host cannot create surfaces.
var ErrNoSpawner = errors.New("no surface spawner configured")

// Surface is an external display surface showing one popped-out panel.
// It is owned by the host environment and may disappear at any time.
type Surface interface {
	ID() string
	Focus() error
	Close() error
}

// Spawner creates surfaces. Implementations are supplied by the host.
type Spawner interface {
	Spawn(ctx context.Context, p Panel) (Surface, error)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(ctx context.Context, p Panel) (Surface, error)

// Spawn implements Spawner.
func (f SpawnerFunc) Spawn(ctx context.Context, p Panel) (Surface, error) {
	return f(ctx, p)
}

// Liveness returns the IDs of the surfaces that still exist.
type Liveness func(ctx context.Context) (map[string]bool, error)

// Popouts manages the pop-out/restore lifecycle of a Layout's panels.
type Popouts struct {
	layout   *Layout
	spawner  Spawner
	liveness Liveness
	log      *slog.Logger
}

// NewPopouts binds a lifecycle manager to l. A nil liveness makes Reconcile
// a no-op; a nil logger discards diagnostics.
func NewPopouts(l *Layout, spawner Spawner, liveness Liveness, log *slog.Logger) *Popouts {
	if log == nil {
		log = logging.Discard()
	}
	return &Popouts{layout: l, spawner: spawner, liveness: liveness, log: log}
}

// Popout detaches panel id into a new surface and hides it from its zone.
// Unknown ids are ignored. If id is already popped out its surface is focused
// instead. When the surface cannot be created the panel stays docked and
// visible, nothing is recorded, and the error is returned for display only.
func (m *Popouts) Popout(ctx context.Context, id string) error {
	p, ok := m.layout.GetPanel(id)
	if !ok {
		return nil
	}
	if s, open := m.layout.popouts[id]; open {
		if err := s.Focus(); err != nil {
			m.log.Debug("focus popout failed", "panel", id, "surface", s.ID(), "err", err)
		}
		return nil
	}
	if m.spawner == nil {
		m.log.Warn("popout unavailable", "panel", id, "err", ErrNoSpawner)
		return fmt.Errorf("pop out %s: %w", id, ErrNoSpawner)
	}
	s, err := m.spawner.Spawn(ctx, p)
	if err != nil {
		m.log.Warn("popout spawn failed", "panel", id, "err", err)
		return fmt.Errorf("pop out %s: %w", id, err)
	}
	if s == nil {
		m.log.Warn("popout spawn returned no surface", "panel", id)
		return fmt.Errorf("pop out %s: no surface", id)
	}
	m.layout.popouts[id] = s
	m.layout.SetVisible(id, false)
	m.layout.notify(Change{Op: OpPopout, PanelID: id, Zone: p.Position})
	m.log.Info("panel popped out", "panel", id, "surface", s.ID())
	return nil
}

// Restore closes the surface of panel id, if any, and docks the panel back
// visibly. Closing is best effort: a surface that is already gone is not an
// error. Ids that are not popped out are ignored.
func (m *Popouts) Restore(id string) {
	s, ok := m.layout.popouts[id]
	if !ok {
		return
	}
	if err := s.Close(); err != nil {
		m.log.Debug("close popout failed", "panel", id, "surface", s.ID(), "err", err)
	}
	m.restore(id)
}

// RestoreAll restores every popped-out panel.
func (m *Popouts) RestoreAll() {
	for _, id := range m.PoppedIDs() {
		m.Restore(id)
	}
}

func (m *Popouts) restore(id string) {
	delete(m.layout.popouts, id)
	m.layout.SetVisible(id, true)
	p, _ := m.layout.GetPanel(id)
	m.layout.notify(Change{Op: OpRestore, PanelID: id, Zone: p.Position, Visible: true})
	m.log.Info("panel restored", "panel", id)
}

// Reconcile restores every panel whose surface no longer exists and returns
// their ids. If liveness cannot be determined nothing changes.
func (m *Popouts) Reconcile(ctx context.Context) []string {
	if m.liveness == nil || len(m.layout.popouts) == 0 {
		return nil
	}
	live, err := m.liveness(ctx)
	if err != nil {
		m.log.Debug("popout liveness check failed", "err", err)
		return nil
	}
	var gone []string
	for _, id := range m.PoppedIDs() {
		if !live[m.layout.popouts[id].ID()] {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		m.restore(id)
	}
	return gone
}

// Popped reports whether panel id is currently popped out.
func (m *Popouts) Popped(id string) bool {
	_, ok := m.layout.popouts[id]
	return ok
}

// PoppedIDs returns the popped-out panel ids, sorted.
func (m *Popouts) PoppedIDs() []string {
	ids := make([]string, 0, len(m.layout.popouts))
	for id := range m.layout.popouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
