// Package tmux opens and tracks the tmux windows that host popped-out panels.
// Commands target the tmux server of the current session (TMUX env set).
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNotInTmux is returned when the dashboard is not running inside tmux.
var ErrNotInTmux = errors.New("not running inside tmux")

// InTmux reports whether the process runs inside a tmux client.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

func run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(out.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// NewWindow opens a detached window named name running command and returns
// its window ID (e.g. @7).
func NewWindow(ctx context.Context, name, command string) (string, error) {
	return run(ctx, "new-window", "-d", "-P", "-F", "#{window_id}", "-n", name, command)
}

// KillWindow closes the window with the given ID.
func KillWindow(ctx context.Context, windowID string) error {
	_, err := run(ctx, "kill-window", "-t", windowID)
	return err
}

// SelectWindow makes the window current in its session.
func SelectWindow(ctx context.Context, windowID string) error {
	_, err := run(ctx, "select-window", "-t", windowID)
	return err
}

// ListWindowIDs returns all live window IDs across all sessions.
func ListWindowIDs(ctx context.Context) (map[string]bool, error) {
	out, err := run(ctx, "list-windows", "-a", "-F", "#{window_id}")
	if err != nil {
		return nil, err
	}
	return parseIDs(out), nil
}

func parseIDs(out string) map[string]bool {
	ids := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			ids[line] = true
		}
	}
	return ids
}
