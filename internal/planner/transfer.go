package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/notify"
	"github.com/sandeepkv93/sprout/internal/storage"
)

var ErrInvalidImport = errors.New("planner: invalid import document")

// Export returns the aggregate in its persisted JSON shape.
func (p *Planner) Export() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return storage.Encode(p.state)
}

// Import replaces the whole aggregate. A document that fails to parse leaves
// the current state untouched.
func (p *Planner) Import(ctx context.Context, raw []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, err := storage.Decode(raw, p.today())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	p.state = st
	return p.commit(ctx)
}

// Tick runs the day rollover and returns the reminders due this minute.
// Callers invoke it once per minute boundary.
func (p *Planner) Tick(ctx context.Context) ([]notify.Trigger, error) {
	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()
	today := clock.DateKey(now)
	var err error
	if p.rollover(today) {
		err = p.commit(ctx)
	}
	triggers := notify.Evaluate(notify.Input{
		Now:            now,
		Tasks:          p.state.Tasks,
		Profile:        p.state.Profile,
		HydrationToday: p.state.Hydration[today],
	})
	return triggers, err
}

// Reminders reloads the stored aggregate and returns the reminders due this
// minute. Unlike Tick it never saves, so a background process can run it
// next to the process that edits the planner.
func (p *Planner) Reminders(ctx context.Context) ([]notify.Trigger, error) {
	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(ctx, clock.DateKey(now)); err != nil {
		return nil, err
	}
	return notify.Evaluate(notify.Input{
		Now:            now,
		Tasks:          p.state.Tasks,
		Profile:        p.state.Profile,
		HydrationToday: p.state.Hydration[clock.DateKey(now)],
	}), nil
}

// WeatherProvider fetches current conditions.
type WeatherProvider interface {
	Current(ctx context.Context) (temp float64, code int, isDay bool, err error)
}

// RefreshWeather returns the cached conditions while they are younger than
// maxAge and otherwise asks provider. The bool reports whether a fetch
// happened.
func (p *Planner) RefreshWeather(ctx context.Context, provider WeatherProvider, maxAge time.Duration) (model.WeatherCache, bool, error) {
	now := p.now()
	p.mu.Lock()
	cached := p.state.Weather
	if cached != nil && now.UnixMilli()-cached.LastFetched < maxAge.Milliseconds() {
		out := *cached
		p.mu.Unlock()
		return out, false, nil
	}
	p.mu.Unlock()

	if provider == nil {
		return model.WeatherCache{}, false, errors.New("planner: no weather provider")
	}
	temp, code, isDay, err := provider.Current(ctx)
	if err != nil {
		if cached != nil {
			return *cached, false, fmt.Errorf("fetch weather: %w", err)
		}
		return model.WeatherCache{}, false, fmt.Errorf("fetch weather: %w", err)
	}

	w := model.WeatherCache{Temp: temp, Code: code, IsDay: isDay, LastFetched: now.UnixMilli()}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Weather = &w
	return w, true, p.commit(ctx)
}
