// Package config loads dashboard settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultDataFile is where the computation pipeline writes its snapshot.
const DefaultDataFile = "public/flr-data.json"

// Config holds process-wide settings. The layout itself is never persisted.
type Config struct {
	DataFile          string        `env:"FLRDASH_DATA_FILE"`
	LogFile           string        `env:"FLRDASH_LOG_FILE"`
	Debug             bool          `env:"FLRDASH_DEBUG"`
	CellWidthPx       int           `env:"FLRDASH_CELL_WIDTH_PX" envDefault:"8"`
	SidebarWidth      int           `env:"FLRDASH_SIDEBAR_WIDTH" envDefault:"320"`
	RemoteAddr        string        `env:"FLRDASH_REMOTE_ADDR"`
	ReconcileInterval time.Duration `env:"FLRDASH_RECONCILE_INTERVAL" envDefault:"2s"`
	OTLPEndpoint      string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName       string        `env:"OTEL_SERVICE_NAME" envDefault:"flrdash"`
}

// Load parses the environment and fills path defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(os.TempDir(), "flrdash.log")
	}
	if cfg.CellWidthPx <= 0 {
		return Config{}, fmt.Errorf("FLRDASH_CELL_WIDTH_PX must be positive, got %d", cfg.CellWidthPx)
	}
	if cfg.ReconcileInterval <= 0 {
		return Config{}, fmt.Errorf("FLRDASH_RECONCILE_INTERVAL must be positive, got %s", cfg.ReconcileInterval)
	}
	return cfg, nil
}
