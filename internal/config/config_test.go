package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/sprout/internal/rewards"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendJSON || cfg.FocusWork != 25*time.Minute || cfg.FocusBreak != 5*time.Minute {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StateFile != filepath.Join(dir, "state.json") || cfg.LedgerPath != filepath.Join(dir, "ledger.db") {
		t.Fatalf("unexpected derived paths: %+v", cfg)
	}
	if cfg.WeatherCache != 30*time.Minute || cfg.TelegramEnabled() || cfg.WeatherEnabled() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelInfo {
		t.Fatalf("unexpected log level: %v", lvl)
	}
	if cfg.CodeSecret != rewards.DefaultSecret {
		t.Fatalf("code secret should default to the planner's own, got %q", cfg.CodeSecret)
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	body := `{"backend":"sqlite","focus_work_minutes":50,"ledger_path":"","log_level":"debug"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPROUT_FOCUS_BREAK_MINUTES", "10")
	t.Setenv("SPROUT_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("SPROUT_FOCUS_WORK_MINUTES", "45")
	t.Setenv("SPROUT_WEATHER_LATITUDE", "52.52")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.SQLitePath != filepath.Join(dir, "sprout.db") {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.FocusWork != 45*time.Minute || cfg.FocusBreak != 10*time.Minute || !cfg.DesktopNotifications {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if !cfg.WeatherEnabled() || cfg.Latitude != 52.52 {
		t.Fatalf("weather location not applied: %+v", cfg)
	}
	if cfg.LedgerPath != "" {
		t.Fatalf("explicit empty ledger path should disable the ledger: %q", cfg.LedgerPath)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SPROUT_BACKEND":            "postgres",
		"SPROUT_FOCUS_WORK_MINUTES": "0",
		"SPROUT_LOG_LEVEL":          "loud",
		"SPROUT_TELEGRAM_TOKEN":     "abc",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(t.TempDir()); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadReportsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
