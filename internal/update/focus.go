package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/focus"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		running, gen := m.Focus.Toggle()
		if !running {
			m.Status = StatusBar{Text: "focus paused"}
			return m, nil
		}
		m.Status = StatusBar{Text: "focus running"}
		return m, focusTickCmd(gen)
	case "r":
		m.Focus.Reset()
		m.Status = StatusBar{Text: "focus reset"}
	case "n":
		m.Focus.Skip()
		m.Status = StatusBar{Text: fmt.Sprintf("%s phase ready", m.Focus.Phase)}
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (tea.Model, tea.Cmd) {
	switch m.Focus.Tick(msg.Gen) {
	case focus.EventContinue:
		return m, focusTickCmd(msg.Gen)
	case focus.EventWorkDone:
		res, err := m.Planner.CompleteFocusSession(m.ctx)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setResult("work session complete; press space to start the break", res)
		m.notify("Focus", "work session complete", "info")
	case focus.EventBreakDone:
		m.Status = StatusBar{Text: "break complete; press space for the next focus block"}
		m.notify("Focus", "break complete", "info")
	}
	return m, nil
}

func focusTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Gen: gen} })
}
