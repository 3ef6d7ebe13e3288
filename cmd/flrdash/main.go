package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"flrdash/internal/config"
	"flrdash/internal/indicators"
	"flrdash/internal/layout"
	"flrdash/internal/logging"
	"flrdash/internal/remote"
	"flrdash/internal/telemetry"
	"flrdash/internal/tmux"
	"flrdash/internal/ui"
)

// flags holds the command line; everything else comes from the environment.
type flags struct {
	panel    string
	dataFile string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.panel, "panel", "", "show a single panel full-screen (used by pop-out windows)")
	flag.StringVar(&f.dataFile, "data", "", "indicator snapshot JSON (default $FLRDASH_DATA_FILE or "+config.DefaultDataFile+")")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: flrdash [flags]\n\n")
		fmt.Fprintf(os.Stderr, "flrdash is a terminal dashboard of financial-regime indicators with\n")
		fmt.Fprintf(os.Stderr, "dockable panels. Run it inside tmux to pop panels out into windows.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f.dataFile != "" {
		cfg.DataFile = f.dataFile
	}

	log, closer, err := logging.Open(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	snapshot, err := indicators.Load(cfg.DataFile)
	if err != nil {
		// Start anyway; panels show the no-data placeholder.
		log.Warn("load snapshot", "path", cfg.DataFile, "err", err)
	}

	if f.panel != "" {
		return runStandalone(cfg, f.panel, snapshot, log)
	}
	return runDashboard(cfg, snapshot, log)
}

// runStandalone is the pop-out mode: one panel, no layout engine.
func runStandalone(cfg config.Config, id string, snapshot indicators.Snapshot, log *slog.Logger) error {
	var panel layout.Panel
	for _, p := range ui.DefaultPanels() {
		if p.ID == id {
			panel = p
		}
	}
	if panel.ID == "" {
		return fmt.Errorf("unknown panel %q", id)
	}
	p := tea.NewProgram(ui.NewStandaloneModel(panel, snapshot), tea.WithAltScreen())
	defer watchSnapshot(p, cfg.DataFile, log)()
	_, err := p.Run()
	return err
}

// watchSnapshot sends a ui.SnapshotMsg to p whenever the data file changes.
// If the watcher cannot start the program runs without live updates.
func watchSnapshot(p *tea.Program, path string, log *slog.Logger) (stop func()) {
	w, err := indicators.Watch(path, func(s indicators.Snapshot, err error) {
		p.Send(ui.SnapshotMsg{Snapshot: s, Err: err})
	}, log)
	if err != nil {
		log.Warn("snapshot updates disabled", "path", path, "err", err)
		return func() {}
	}
	return func() {
		if err := w.Close(); err != nil {
			log.Warn("stop snapshot watcher", "err", err)
		}
	}
}

func runDashboard(cfg config.Config, snapshot indicators.Snapshot, log *slog.Logger) error {
	ctx := context.Background()

	tracer, err := telemetry.NewOTLP(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Warn("tracing disabled", "err", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown", "err", err)
		}
	}()

	l, err := layout.New(ui.DefaultPanels(), layout.WithSidebarWidth(cfg.SidebarWidth))
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}
	spawner := &tmux.WindowSpawner{ExtraArgs: []string{"-data", cfg.DataFile}}
	engine := layout.NewEngine(l, layout.NewPopouts(l, spawner, tmux.Liveness, log))
	if !tmux.InTmux() {
		log.Info("not running inside tmux; pop-out is unavailable")
	}

	app := ui.NewAppModel(ui.Options{
		Engine:            engine,
		Snapshot:          snapshot,
		Tracer:            tracer,
		Log:               log,
		CellWidthPx:       cfg.CellWidthPx,
		ReconcileInterval: cfg.ReconcileInterval,
	})
	p := tea.NewProgram(app.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if cfg.RemoteAddr != "" {
		srv := remote.NewServer(cfg.RemoteAddr, func(c remote.Command) {
			p.Send(ui.RemoteCommandMsg{Command: c})
		}, log)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := srv.Stop(stopCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				log.Warn("stop remote server", "err", err)
			}
		}()
	}

	defer watchSnapshot(p, cfg.DataFile, log)()

	log.Info("dashboard started", "data", cfg.DataFile, "sidebar_px", l.SidebarWidth())
	_, err = p.Run()
	// Close pop-out windows along with the dashboard.
	engine.Popouts.RestoreAll()
	return err
}
