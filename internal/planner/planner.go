// Package planner owns the aggregate planner state. Callers mutate it only
// through methods; every mutation is saved before the method returns.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/sprout/internal/agenda"
	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/ledger"
	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/rewards"
	"github.com/sandeepkv93/sprout/internal/storage"
)

var (
	ErrNilStore = errors.New("planner: nil store")
	ErrReadOnly = errors.New("planner: read-only")
)

// Recorder receives every applied point change and every award the daily
// cap rejected.
type Recorder interface {
	Record(ctx context.Context, e ledger.Entry) error
}

type Option func(*Planner)

func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithSigner(signer rewards.Signer) Option {
	return func(p *Planner) {
		p.signer = signer
	}
}

func WithLedger(r Recorder) Option {
	return func(p *Planner) {
		p.ledger = r
	}
}

// WithReadOnly opens a planner that never writes the store. Mutations fail
// with ErrReadOnly; Reload and Reminders still work.
func WithReadOnly() Option {
	return func(p *Planner) {
		p.readOnly = true
	}
}

type Planner struct {
	mu       sync.Mutex
	state    model.State
	store    storage.Store
	rewards  *rewards.Engine
	signer   rewards.Signer
	ledger   Recorder
	logger   *slog.Logger
	now      func() time.Time
	readOnly bool
}

// New loads state from store, falling back to defaults when nothing was
// saved yet, and applies the day rollover.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Planner, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	p := &Planner{
		store:  store,
		signer: rewards.NewHMACSigner(rewards.DefaultSecret),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.rewards = rewards.NewEngine(p.signer, p.logger)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(ctx, p.today()); err != nil {
		return nil, err
	}
	if p.readOnly {
		return p, nil
	}
	if err := p.commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// load replaces the in-memory aggregate with the stored one and rolls it
// forward to today without saving.
func (p *Planner) load(ctx context.Context, today string) error {
	st, err := p.store.Load(ctx, today)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		st = model.DefaultState()
	default:
		return fmt.Errorf("load state: %w", err)
	}
	if st.Profile.SelectedDate == "" {
		st.Profile.SelectedDate = today
	}
	p.state = st
	p.rollover(today)
	return nil
}

// Reload discards the in-memory aggregate and reads it again from the
// store. Nothing is written, so another process may own the file.
func (p *Planner) Reload(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(ctx, p.today())
}

func (p *Planner) today() string {
	return clock.DateKey(p.now())
}

func (p *Planner) Now() time.Time {
	return p.now()
}

// commit persists the current state. On failure the in-memory mutation is
// kept and the error is returned.
func (p *Planner) commit(ctx context.Context) error {
	if p.readOnly {
		return ErrReadOnly
	}
	if err := p.store.Save(ctx, p.state); err != nil {
		p.logger.Error("save state failed", "err", err)
		return fmt.Errorf("planner: save: %w", err)
	}
	return nil
}

// commitIf saves only when changed is set, so a no-op that followed a
// rollover still persists the new day.
func (p *Planner) commitIf(ctx context.Context, changed bool) error {
	if !changed {
		return nil
	}
	return p.commit(ctx)
}

// rollover is idempotent for a given date. It advances the streak, clears
// completion on recurring templates when the day changed and resets the
// daily points counter. It reports whether anything changed.
func (p *Planner) rollover(today string) bool {
	changed := false
	prof := &p.state.Profile
	if prof.LastActiveDate != today {
		if prof.LastActiveDate != "" {
			if next, err := clock.ShiftDate(prof.LastActiveDate, 1); err == nil && next == today {
				prof.Streak++
			} else {
				prof.Streak = 1
			}
			for i := range p.state.Tasks {
				if p.state.Tasks[i].Recurrence != model.RecurrenceNone {
					p.state.Tasks[i].Completed = false
				}
			}
		} else {
			prof.Streak = 1
		}
		prof.LastActiveDate = today
		changed = true
	}
	if p.state.Rewards.DailyPoints.Date != today {
		rewards.Rollover(&p.state.Rewards, today)
		changed = true
	}
	return changed
}

func (p *Planner) award(ctx context.Context, amount int, source rewards.Source, reason, today string) rewards.Result {
	res := p.rewards.Award(ctx, &p.state.Profile, &p.state.Rewards, amount, source, today)
	if p.ledger == nil {
		return res
	}
	e := ledger.Entry{Date: today, Source: string(source), Balance: res.Points, Reason: reason}
	switch {
	case res.CapReached:
		e.Amount = amount
		e.Capped = true
	case res.Applied && res.PointsDelta != 0:
		e.Amount = res.PointsDelta
	default:
		return res
	}
	if err := p.ledger.Record(ctx, e); err != nil {
		p.logger.Warn("ledger record failed", "source", source, "capped", e.Capped, "err", err)
	}
	return res
}

// Snapshot returns a deep copy of the aggregate.
func (p *Planner) Snapshot() model.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *Planner) Today() string {
	return p.today()
}

func (p *Planner) SelectedDate() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Profile.SelectedDate
}

// Agenda returns the occurrences on date in start order.
func (p *Planner) Agenda(date string) []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return agenda.Resolve(p.state.Tasks, date)
}

func (p *Planner) Clusters(date string) [][]model.Task {
	return agenda.Clusters(p.Agenda(date))
}

// Status reports what is happening right now.
func (p *Planner) Status() agenda.Status {
	now := clock.At(p.now())
	p.mu.Lock()
	defer p.mu.Unlock()
	return agenda.CurrentOrNext(p.state.Tasks, now)
}

func (p *Planner) Level() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return rewards.Level(p.state.Profile.Points)
}

func (p *Planner) SelectDate(ctx context.Context, date string) error {
	if !clock.ValidDate(date) {
		return fmt.Errorf("%w: %q", clock.ErrInvalidDate, date)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover(p.today())
	p.state.Profile.SelectedDate = date
	return p.commit(ctx)
}

// ShiftSelectedDate moves the viewed date by days.
func (p *Planner) ShiftSelectedDate(ctx context.Context, days int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	today := p.today()
	p.rollover(today)
	base := p.state.Profile.SelectedDate
	if !clock.ValidDate(base) {
		base = today
	}
	next, err := clock.ShiftDate(base, days)
	if err != nil {
		return "", err
	}
	p.state.Profile.SelectedDate = next
	return next, p.commit(ctx)
}
