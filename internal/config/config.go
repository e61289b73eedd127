// Package config loads runtime settings from an optional config.json and
// SPROUT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/sprout/internal/rewards"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	EnvPrefix = "SPROUT"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	DataDir              string
	Backend              string
	StateFile            string
	SQLitePath           string
	LedgerPath           string
	CodeSecret           string
	DesktopNotifications bool
	TelegramToken        string
	TelegramChatID       int64
	FocusWork            time.Duration
	FocusBreak           time.Duration
	WeatherCache         time.Duration
	Latitude             float64
	Longitude            float64
	LogLevel             string
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".sprout"
	}
	return filepath.Join(home, ".config", "sprout")
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("backend", BackendJSON)
	v.SetDefault("state_file", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("code_secret", rewards.DefaultSecret)
	v.SetDefault("desktop_notifications", false)
	v.SetDefault("telegram_token", "")
	v.SetDefault("telegram_chat_id", 0)
	v.SetDefault("focus_work_minutes", 25)
	v.SetDefault("focus_break_minutes", 5)
	v.SetDefault("weather_cache_minutes", 30)
	v.SetDefault("weather_latitude", 0.0)
	v.SetDefault("weather_longitude", 0.0)
	v.SetDefault("log_level", "info")
}

// Load reads config.json from dir when present; a missing file is not an
// error. Environment variables override file values.
func Load(dir string) (Config, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDataDir()
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataDir:              v.GetString("data_dir"),
		Backend:              strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		StateFile:            v.GetString("state_file"),
		SQLitePath:           v.GetString("sqlite_path"),
		CodeSecret:           v.GetString("code_secret"),
		DesktopNotifications: v.GetBool("desktop_notifications"),
		TelegramToken:        v.GetString("telegram_token"),
		TelegramChatID:       v.GetInt64("telegram_chat_id"),
		FocusWork:            time.Duration(v.GetInt("focus_work_minutes")) * time.Minute,
		FocusBreak:           time.Duration(v.GetInt("focus_break_minutes")) * time.Minute,
		WeatherCache:         time.Duration(v.GetInt("weather_cache_minutes")) * time.Minute,
		Latitude:             v.GetFloat64("weather_latitude"),
		Longitude:            v.GetFloat64("weather_longitude"),
		LogLevel:             v.GetString("log_level"),
	}
	if cfg.StateFile == "" {
		cfg.StateFile = filepath.Join(cfg.DataDir, "state.json")
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "sprout.db")
	}
	// An explicit empty ledger_path disables the ledger.
	if v.IsSet("ledger_path") {
		cfg.LedgerPath = v.GetString("ledger_path")
	} else {
		cfg.LedgerPath = filepath.Join(cfg.DataDir, "ledger.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.FocusWork <= 0 || c.FocusBreak <= 0 {
		return fmt.Errorf("%w: focus durations must be positive", ErrInvalidConfig)
	}
	if c.WeatherCache < 0 {
		return fmt.Errorf("%w: weather cache must not be negative", ErrInvalidConfig)
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("%w: telegram needs both token and chat id", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// WeatherEnabled reports whether a location was configured.
func (c Config) WeatherEnabled() bool {
	return c.Latitude != 0 || c.Longitude != 0
}
