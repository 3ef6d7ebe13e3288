package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("shown", "panel", "csd")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written without debug: %q", out)
	}
	if !strings.Contains(out, "panel=csd") {
		t.Errorf("expected panel=csd in %q", out)
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug record missing: %q", buf.String())
	}
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flrdash.log")
	log, closer, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Info("first")
	closer.Close()

	log, closer, err = Open(path, false)
	if err != nil {
		t.Fatalf("Open again: %v", err)
	}
	log.Info("second")
	closer.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "first") || !strings.Contains(string(b), "second") {
		t.Errorf("expected both records, got %q", b)
	}
}

func TestOpen_BadPath(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing", "x.log"), false)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDiscard_DropsEverything(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled at any level")
	}
}
