package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/planner"
	"github.com/sandeepkv93/sprout/internal/rewards"
)

func (m Model) agenda() []model.Task {
	return m.Planner.Agenda(m.Planner.SelectedDate())
}

// syncCursor clamps the cursor to the viewed agenda and keeps
// SelectedTaskID in step with it.
func (m *Model) syncCursor() {
	items := m.agenda()
	if len(items) == 0 {
		m.Cursor = 0
		m.SelectedTaskID = ""
		return
	}
	if m.Cursor >= len(items) {
		m.Cursor = len(items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.SelectedTaskID = items[m.Cursor].ID
}

func (m Model) currentTask() (model.Task, bool) {
	items := m.agenda()
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.Cursor], true
}

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.Cursor++
	case "k", "up":
		m.Cursor--
	case " ", "x":
		task, ok := m.currentTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			break
		}
		res, _, err := m.Planner.ToggleTask(m.ctx, task.ID)
		if err != nil {
			m.setError(err)
			break
		}
		verb := "completed"
		if task.Completed {
			verb = "reopened"
		}
		m.setResult(fmt.Sprintf("%s: %s", verb, task.Title), res)
	case "d":
		task, ok := m.currentTask()
		if !ok {
			break
		}
		date := m.Planner.SelectedDate()
		if _, err := m.Planner.DeleteOccurrence(m.ctx, task.ID, date); err != nil {
			m.setError(err)
			break
		}
		m.Status = StatusBar{Text: fmt.Sprintf("removed %s on %s", task.Title, date)}
	case "D":
		task, ok := m.currentTask()
		if !ok {
			break
		}
		if _, err := m.Planner.DeleteTask(m.ctx, task.ID); err != nil {
			m.setError(err)
			break
		}
		m.Status = StatusBar{Text: "deleted every occurrence of " + task.Title}
	case "h", "left":
		m.shiftDay(-1)
	case "l", "right":
		m.shiftDay(1)
	case "t":
		if err := m.Planner.SelectDate(m.ctx, m.Planner.Today()); err != nil {
			m.setError(err)
			break
		}
		m.Cursor = 0
		m.Status = StatusBar{Text: "back to today"}
	case "w":
		count, res, err := m.Planner.DrinkWater(m.ctx)
		if err != nil {
			m.setError(err)
			break
		}
		_, goal := m.Planner.HydrationToday()
		m.setResult(fmt.Sprintf("water %d/%d", count, goal), res)
	case "W":
		count, err := m.Planner.UndoWater(m.ctx)
		if err != nil {
			m.setError(err)
			break
		}
		m.Status = StatusBar{Text: fmt.Sprintf("water undone, %d cup(s) today", count)}
	case "b":
		res, err := m.Planner.ClaimWakeBounty(m.ctx)
		switch {
		case errors.Is(err, planner.ErrBountyClaimed), errors.Is(err, planner.ErrOutsideWakeWindow):
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		case err != nil:
			m.setError(err)
		default:
			m.setResult("wake bounty claimed", res)
		}
	}
	m.syncCursor()
	return m
}

func (m *Model) shiftDay(days int) {
	date, err := m.Planner.ShiftSelectedDate(m.ctx, days)
	if err != nil {
		m.setError(err)
		return
	}
	m.Cursor = 0
	m.Status = StatusBar{Text: "viewing " + date}
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

// setResult reports an award outcome in the status bar and queues the
// notable ones (cap, level up, new saplings) as notifications.
func (m *Model) setResult(prefix string, res rewards.Result) {
	text := prefix
	switch {
	case res.CapReached:
		text += " (daily points limit reached)"
	case res.Applied && res.PointsDelta != 0:
		text += fmt.Sprintf(" (%+d pts)", res.PointsDelta)
	}
	m.Status = StatusBar{Text: text}
	if res.CapReached {
		m.notify("Rewards", fmt.Sprintf("daily limit of %d points reached", rewards.DailyLimit), "warn")
	}
	if res.LeveledUp {
		m.notify("Rewards", fmt.Sprintf("level up! you are now level %d", res.NewLevel), "info")
	}
	for _, s := range res.Minted {
		m.notify("Rewards", fmt.Sprintf("sapling #%s planted, code %s", s.ID, s.Code), "info")
	}
}
