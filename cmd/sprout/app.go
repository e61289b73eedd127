package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/sprout/internal/config"
	"github.com/sandeepkv93/sprout/internal/ledger"
	"github.com/sandeepkv93/sprout/internal/notify"
	"github.com/sandeepkv93/sprout/internal/planner"
	"github.com/sandeepkv93/sprout/internal/rewards"
	"github.com/sandeepkv93/sprout/internal/storage"
	"github.com/sandeepkv93/sprout/internal/weather"
)

type app struct {
	planner  *planner.Planner
	ledger   *ledger.Ledger
	notifier notify.Notifier
	weather  planner.WeatherProvider
	logger   *slog.Logger
	closers  []io.Closer
}

func (r *app) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i].Close())
	}
	return errors.Join(errs...)
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func openLogFile(dataDir string) (*os.File, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dataDir, "sprout.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func openStore(cfg config.Config) (storage.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := storage.NewFileStore(cfg.StateFile)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
}

// buildNotifier always logs; desktop and Telegram delivery are opt-in.
func buildNotifier(cfg config.Config, logger *slog.Logger) (notify.Notifier, error) {
	out := notify.Multi{notify.LogNotifier{Logger: logger}}
	if cfg.DesktopNotifications {
		out = append(out, notify.DesktopNotifier{})
	}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("telegram: %w", err)
		}
		out = append(out, tg)
	}
	return out, nil
}

func openApp(ctx context.Context, cfg config.Config, logger *slog.Logger, logOut io.Writer, extra ...planner.Option) (*app, error) {
	rt := &app{logger: logger}

	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	opts := []planner.Option{
		planner.WithLogger(logger),
		planner.WithSigner(rewards.NewHMACSigner(cfg.CodeSecret)),
	}
	if cfg.LedgerPath != "" {
		l, err := ledger.Open(cfg.LedgerPath, logOut)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.ledger = l
		rt.closers = append(rt.closers, l)
		opts = append(opts, planner.WithLedger(l))
	}

	opts = append(opts, extra...)
	p, err := planner.New(ctx, store, opts...)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.planner = p

	n, err := buildNotifier(cfg, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.notifier = n

	if cfg.WeatherEnabled() {
		w, err := weather.NewOpenMeteo(cfg.Latitude, cfg.Longitude)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.weather = w
	}
	return rt, nil
}
