package update

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/notify"
)

// heartbeatCmd fires on the next wall-clock minute boundary.
func heartbeatCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return HeartbeatMsg{At: t} })
}

func (m Model) onHeartbeat(_ HeartbeatMsg) (tea.Model, tea.Cmd) {
	triggers, err := m.Planner.Tick(m.ctx)
	if err != nil {
		m.setError(err)
	}
	m.syncCursor()
	if len(triggers) == 0 {
		return m, tea.Batch(heartbeatCmd(), m.refreshWeatherCmd())
	}
	for _, tr := range triggers {
		m.notify(tr.Title, tr.Body, string(tr.Kind))
	}
	last := triggers[len(triggers)-1]
	m.Status = StatusBar{Text: last.Title + ": " + last.Body}
	return m, tea.Batch(heartbeatCmd(), m.refreshWeatherCmd(), deliverCmd(m.ctx, m.notifier, triggers, m.logger))
}

// refreshWeatherCmd is nil without a provider. The planner only calls the
// provider once the cached reading is older than the configured age.
func (m Model) refreshWeatherCmd() tea.Cmd {
	if m.weather == nil {
		return nil
	}
	p, provider, age, ctx := m.Planner, m.weather, m.weatherAge, m.ctx
	return func() tea.Msg {
		_, fetched, err := p.RefreshWeather(ctx, provider, age)
		return WeatherMsg{Fetched: fetched, Err: err}
	}
}

func deliverCmd(ctx context.Context, n notify.Notifier, triggers []notify.Trigger, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		failed := notify.Deliver(ctx, n, triggers, logger)
		return RemindersDeliveredMsg{Sent: len(triggers), Failed: failed}
	}
}
