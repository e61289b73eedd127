package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/config"
	"github.com/sandeepkv93/sprout/internal/notify"
	"github.com/sandeepkv93/sprout/internal/planner"
	"github.com/sandeepkv93/sprout/internal/scheduler"
	"github.com/sandeepkv93/sprout/internal/update"
)

const usage = `usage: sprout [-config DIR] [command]

commands:
  (none)          open the planner
  remind          deliver reminders every minute until interrupted
  export FILE     write the planner state as JSON
  import FILE     replace the planner state from a JSON export
  history [DAYS]  print points earned per day (default 7)
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "sprout failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sprout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config", "", "directory holding config.json (default ~/.config/sprout)")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		return err
	}
	rest := fs.Args()
	cmd := ""
	if len(rest) > 0 {
		cmd = rest[0]
		rest = rest[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logOut := stderr
	if cmd == "" {
		// the TUI owns the terminal
		f, err := openLogFile(cfg.DataDir)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}

	var extra []planner.Option
	if cmd == "remind" {
		// the daemon runs beside the TUI and must not overwrite its saves
		extra = append(extra, planner.WithReadOnly())
	}
	rt, err := openApp(ctx, cfg, logger, logOut, extra...)
	if err != nil {
		return err
	}
	defer rt.Close()

	switch cmd {
	case "":
		return runTUI(ctx, rt, cfg)
	case "remind":
		return runRemind(ctx, rt)
	case "export":
		if len(rest) != 1 {
			return errors.New("export needs a file path")
		}
		return runExport(rt, rest[0])
	case "import":
		if len(rest) != 1 {
			return errors.New("import needs a file path")
		}
		return runImport(ctx, rt, rest[0])
	case "history":
		days := 7
		if len(rest) == 1 {
			if _, err := fmt.Sscanf(rest[0], "%d", &days); err != nil || days < 1 {
				return fmt.Errorf("history: invalid day count %q", rest[0])
			}
		}
		return runHistory(ctx, rt, days, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runTUI(ctx context.Context, rt *app, cfg config.Config) error {
	m := update.NewModel(ctx, rt.planner, update.Options{
		Notifier:      rt.notifier,
		Logger:        rt.logger,
		FocusWork:     cfg.FocusWork,
		FocusBreak:    cfg.FocusBreak,
		Weather:       rt.weather,
		WeatherMaxAge: cfg.WeatherCache,
	})
	program := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runRemind(ctx context.Context, rt *app) error {
	hb, err := scheduler.NewHeartbeat(time.Local, 4)
	if err != nil {
		return err
	}
	rt.logger.Info("reminder daemon started")
	err = hb.Run(ctx, func(ctx context.Context, at time.Time) {
		triggers, err := rt.planner.Reminders(ctx)
		if err != nil {
			rt.logger.Error("reminder check failed", "err", err)
			return
		}
		if len(triggers) == 0 {
			return
		}
		failed := notify.Deliver(ctx, rt.notifier, triggers, rt.logger)
		rt.logger.Info("reminders delivered", "at", at.Format("15:04"), "count", len(triggers), "failed", failed)
	})
	if dropped := hb.Dropped(); dropped > 0 {
		rt.logger.Warn("heartbeat ticks dropped", "count", dropped)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runExport(rt *app, path string) error {
	raw, err := rt.planner.Export()
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func runImport(ctx context.Context, rt *app, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return rt.planner.Import(ctx, raw)
}

func runHistory(ctx context.Context, rt *app, days int, out io.Writer) error {
	if rt.ledger == nil {
		return errors.New("history: the points ledger is disabled")
	}
	today := rt.planner.Today()
	from, err := clock.ShiftDate(today, -(days - 1))
	if err != nil {
		return err
	}
	totals, err := rt.ledger.DailyTotals(ctx, from, today)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Fprintln(out, "no points recorded")
		return nil
	}
	fmt.Fprintf(out, "%-10s  %6s  %6s  %6s\n", "date", "earned", "spent", "capped")
	for _, d := range totals {
		fmt.Fprintf(out, "%-10s  %6d  %6d  %6d\n", d.Date, d.Earned, d.Spent, d.Capped)
	}
	return nil
}
