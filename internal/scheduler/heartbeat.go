// Package scheduler drives the minute heartbeat that re-evaluates the day
// and fires reminders.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// MinuteSpec fires at second zero of every minute.
const MinuteSpec = "0 * * * * *"

var ErrStopped = errors.New("scheduler: heartbeat stopped")

type Option func(*Heartbeat)

// WithSpec replaces MinuteSpec. The spec uses the six-field seconds format
// or a descriptor such as "@every 1s".
func WithSpec(spec string) Option {
	return func(h *Heartbeat) {
		h.spec = spec
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Heartbeat) {
		if now != nil {
			h.now = now
		}
	}
}

// Heartbeat emits the wall-clock time on C at every spec boundary. Sends
// never block; ticks are dropped when the consumer falls behind.
type Heartbeat struct {
	mu      sync.Mutex
	cron    *cron.Cron
	spec    string
	now     func() time.Time
	out     chan time.Time
	started bool
	stopped bool
	dropped uint64
}

func NewHeartbeat(loc *time.Location, bufferSize int, opts ...Option) (*Heartbeat, error) {
	if loc == nil {
		loc = time.Local
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	h := &Heartbeat{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		spec: MinuteSpec,
		now:  time.Now,
		out:  make(chan time.Time, bufferSize),
	}
	for _, opt := range opts {
		opt(h)
	}
	if _, err := h.cron.AddFunc(h.spec, h.emit); err != nil {
		return nil, fmt.Errorf("heartbeat spec %q: %w", h.spec, err)
	}
	return h, nil
}

func (h *Heartbeat) C() <-chan time.Time {
	return h.out
}

func (h *Heartbeat) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}

func (h *Heartbeat) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrStopped
	}
	if h.started {
		return nil
	}
	h.started = true
	h.cron.Start()
	return nil
}

// Stop waits for a running job to finish and closes C. Safe to call twice.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	started := h.started
	h.mu.Unlock()

	if started {
		ctx := h.cron.Stop()
		<-ctx.Done()
	}
	close(h.out)
}

func (h *Heartbeat) emit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	select {
	case h.out <- h.now():
	default:
		atomic.AddUint64(&h.dropped, 1)
	}
}

// Run starts the heartbeat and calls fn for every tick until ctx is done,
// then stops it.
func (h *Heartbeat) Run(ctx context.Context, fn func(context.Context, time.Time)) error {
	if err := h.Start(); err != nil {
		return err
	}
	defer h.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case at, ok := <-h.out:
			if !ok {
				return ErrStopped
			}
			fn(ctx, at)
		}
	}
}
