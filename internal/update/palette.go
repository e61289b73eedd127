package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/commands"
	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/planner"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) target(q commands.TargetArgs) (model.Task, error) {
	task, ok := commands.MatchTask(q.Query, m.agenda())
	if !ok {
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", q.Query)}
	}
	return task, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.Planner.AddTask(m.ctx, planner.TaskInput{
				Title:      a.Title,
				StartTime:  a.Start,
				EndTime:    a.End,
				Recurrence: a.Recurrence,
				Date:       a.Date,
				Days:       a.Days,
			})
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewToday
			return commands.Result{Message: fmt.Sprintf("added %s %s-%s", task.Title, task.StartTime, task.EndTime)}, nil
		},
		Done: func(q commands.TargetArgs) (commands.Result, error) {
			task, err := m.target(q)
			if err != nil {
				return commands.Result{}, err
			}
			if task.Completed {
				return commands.Result{Message: task.Title + " is already done"}, nil
			}
			res, _, err := m.Planner.ToggleTask(m.ctx, task.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.setResult("completed: "+task.Title, res)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Skip: func(q commands.TargetArgs) (commands.Result, error) {
			task, err := m.target(q)
			if err != nil {
				return commands.Result{}, err
			}
			date := m.Planner.SelectedDate()
			if _, err := m.Planner.DeleteOccurrence(m.ctx, task.ID, date); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("skipped %s on %s", task.Title, date)}, nil
		},
		Delete: func(q commands.TargetArgs) (commands.Result, error) {
			task, err := m.target(q)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.Planner.DeleteTask(m.ctx, task.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "deleted " + task.Title}, nil
		},
		Water: func(w commands.WaterArgs) (commands.Result, error) {
			count := 0
			for i := 0; i < w.Delta; i++ {
				c, res, err := m.Planner.DrinkWater(m.ctx)
				if err != nil {
					return commands.Result{}, err
				}
				count = c
				m.setResult("", res)
			}
			for i := 0; i > w.Delta; i-- {
				c, err := m.Planner.UndoWater(m.ctx)
				if err != nil {
					return commands.Result{}, err
				}
				count = c
			}
			_, goal := m.Planner.HydrationToday()
			return commands.Result{Message: fmt.Sprintf("water %d/%d", count, goal)}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			if err := m.Planner.SetWaterGoal(m.ctx, g.Cups); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("water goal set to %d cups", g.Cups)}, nil
		},
		Focus: func() (commands.Result, error) {
			m.CurrentView = ViewFocus
			if !m.Focus.Running {
				_, gen := m.Focus.Toggle()
				next = focusTickCmd(gen)
			}
			return commands.Result{Message: "focus running"}, nil
		},
		Bounty: func() (commands.Result, error) {
			res, err := m.Planner.ClaimWakeBounty(m.ctx)
			if err != nil {
				return commands.Result{}, err
			}
			m.setResult("wake bounty claimed", res)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Note: func(n commands.NoteArgs) (commands.Result, error) {
			if _, err := m.Planner.AddNote(m.ctx, n.Content); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewNotes
			m.NoteCursor = 0
			return commands.Result{Message: "note added"}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			var date string
			var err error
			switch {
			case g.Today:
				date = m.Planner.Today()
				err = m.Planner.SelectDate(m.ctx, date)
			case g.Date != "":
				date = g.Date
				err = m.Planner.SelectDate(m.ctx, date)
			default:
				date, err = m.Planner.ShiftSelectedDate(m.ctx, g.Offset)
			}
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewToday
			m.Cursor = 0
			return commands.Result{Message: "viewing " + date}, nil
		},
		Claim: func(c commands.ClaimArgs) (commands.Result, error) {
			ok, err := m.Planner.ClaimSapling(m.ctx, c.SaplingID)
			if err != nil {
				return commands.Result{}, err
			}
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("sapling %s is unknown or already claimed", c.SaplingID)}
			}
			return commands.Result{Message: "claimed sapling #" + c.SaplingID}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.syncCursor()
	m.closePalette()
	return m, next
}
