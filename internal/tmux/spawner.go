package tmux

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"flrdash/internal/layout"
)

// opTimeout bounds focus/close calls, which have no caller context.
const opTimeout = 2 * time.Second

// WindowSpawner pops panels out into tmux windows running the dashboard in
// single-panel mode.
type WindowSpawner struct {
	// Executable is the dashboard binary; defaults to os.Executable().
	Executable string
	// ExtraArgs are appended after "-panel <id>", e.g. "-data <path>".
	ExtraArgs []string
}

var _ layout.Spawner = (*WindowSpawner)(nil)

// Spawn implements layout.Spawner.
func (s *WindowSpawner) Spawn(ctx context.Context, p layout.Panel) (layout.Surface, error) {
	if !InTmux() {
		return nil, ErrNotInTmux
	}
	exe := s.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("locate executable: %w", err)
		}
	}
	id, err := NewWindow(ctx, "flrdash:"+p.ID, s.command(exe, p.ID))
	if err != nil {
		return nil, err
	}
	return &Window{id: id}, nil
}

func (s *WindowSpawner) command(exe, panelID string) string {
	parts := []string{shellQuote(exe), "-panel", shellQuote(panelID)}
	for _, a := range s.ExtraArgs {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// shellQuote wraps s in single quotes for the shell tmux runs commands with.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Liveness implements layout.Liveness over tmux windows.
func Liveness(ctx context.Context) (map[string]bool, error) {
	if !InTmux() {
		return nil, ErrNotInTmux
	}
	return ListWindowIDs(ctx)
}

// Window is a tmux window hosting one popped-out panel.
type Window struct {
	id string
}

// ID implements layout.Surface.
func (w *Window) ID() string { return w.id }

// Focus implements layout.Surface.
func (w *Window) Focus() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return SelectWindow(ctx, w.id)
}

// Close implements layout.Surface.
func (w *Window) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return KillWindow(ctx, w.id)
}
