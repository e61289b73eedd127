package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(heartbeatCmd(), m.refreshWeatherCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			m.syncCursor()
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m, nil
		case m.Keys.Rewards:
			m.CurrentView = ViewRewards
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewRewards:
			return m.handleRewardsKey(typed), nil
		case ViewNotes:
			return m.handleNotesKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			m.syncCursor()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case HeartbeatMsg:
		return m.onHeartbeat(typed)
	case WeatherMsg:
		if typed.Err != nil {
			m.logger.Warn("weather refresh failed", "err", typed.Err)
		}
		return m, nil
	case RemindersDeliveredMsg:
		if typed.Failed > 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("%d of %d reminder(s) failed to deliver", typed.Failed, typed.Sent), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	left := ""
	switch m.CurrentView {
	case ViewToday:
		left = m.renderTodayView()
	case ViewFocus:
		left = m.renderFocusView()
	case ViewRewards:
		left = m.renderRewardsView()
	case ViewNotes:
		left = m.renderNotesView()
	}
	right := m.renderCommandPalette() + m.renderHelpIfVisible()
	if m.CurrentView == ViewToday && right == "" {
		right = m.renderTaskDetail()
	}

	snap := m.Planner.Snapshot()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("sprout | %s | %d pts | streak %d", m.CurrentView, snap.Profile.Points, snap.Profile.Streak),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s today | %s focus | %s rewards | %s notes | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Focus, m.Keys.Rewards, m.Keys.Notes, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewFocus, ViewRewards, ViewNotes:
		return true
	default:
		return false
	}
}
