package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/agenda"
	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/rewards"
	"github.com/sandeepkv93/sprout/internal/views"
	wx "github.com/sandeepkv93/sprout/internal/weather"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderTodayView() string {
	snap := m.Planner.Snapshot()
	date := snap.Profile.SelectedDate
	today := m.Planner.Today()

	var clusters [][]views.TaskRowData
	for _, cluster := range agenda.Clusters(agenda.Resolve(snap.Tasks, date)) {
		rows := make([]views.TaskRowData, 0, len(cluster))
		for _, t := range cluster {
			glyph := ""
			if icon, ok := model.ClassifyIcon(t.Title); ok {
				glyph = icon.Glyph()
			}
			rows = append(rows, views.TaskRowData{
				ID:         t.ID,
				Title:      t.Title,
				Start:      t.StartTime,
				End:        t.EndTime,
				Glyph:      glyph,
				Recurrence: string(t.Recurrence),
				Completed:  t.Completed,
			})
		}
		clusters = append(clusters, rows)
	}

	status := ""
	if date == today {
		status = describeStatus(m.Planner.Status())
	}
	weather := ""
	if w := snap.Weather; w != nil {
		weather = fmt.Sprintf("%.0f°C %s", w.Temp, wx.Describe(w.Code))
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:       date,
		IsToday:    date == today,
		StatusLine: status,
		Clusters:   clusters,
		SelectedID: m.SelectedTaskID,
		Water:      snap.Hydration[today],
		WaterGoal:  snap.Profile.Water.Goal,
		Weather:    weather,
	})
}

func describeStatus(st agenda.Status) string {
	switch st.Kind {
	case agenda.KindCurrent:
		return fmt.Sprintf("now: %s (%d min left)", st.Task.Title, st.MinutesLeft)
	case agenda.KindNext:
		return fmt.Sprintf("next: %s in %d min | %d/%d left", st.Task.Title, st.MinutesLeft, st.Remaining, st.Total)
	case agenda.KindDayComplete:
		return "all done for today"
	case agenda.KindDayEnded:
		return fmt.Sprintf("day ended with %d task(s) open", st.Remaining)
	default:
		return "free time"
	}
}

func (m Model) renderTaskDetail() string {
	task, ok := m.currentTask()
	if !ok {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(task.Title + "\n")
	b.WriteString(fmt.Sprintf("%s-%s | %s\n", task.StartTime, task.EndTime, task.Recurrence))
	if task.Recurrence == model.RecurrenceWeekdays {
		names := make([]string, 0, len(task.Days))
		for _, d := range task.Days {
			names = append(names, time.Weekday(d).String()[:3])
		}
		b.WriteString("on: " + strings.Join(names, ",") + "\n")
	}
	if len(task.DeletedDates) > 0 {
		b.WriteString(fmt.Sprintf("skipped dates: %d\n", len(task.DeletedDates)))
	}
	b.WriteString("actions: [space]toggle [d]skip day [D]delete")
	return b.String()
}

func (m Model) renderFocusView() string {
	return views.RenderFocusPanel(views.FocusPanelData{
		Phase:              string(m.Focus.Phase),
		Timer:              m.Focus.Clock(),
		Running:            m.Focus.Running,
		ProgressView:       m.focusProgress.ViewAs(m.Focus.Progress()),
		ProgressPct:        int(m.Focus.Progress() * 100),
		CompletedPomodoros: m.Focus.Completed,
	})
}

func (m Model) renderRewardsView() string {
	snap := m.Planner.Snapshot()
	points := snap.Profile.Points
	level := rewards.Level(points)
	saplings := make([]views.SaplingRowData, 0, len(snap.Rewards.Saplings))
	for _, s := range snap.Rewards.Saplings {
		saplings = append(saplings, views.SaplingRowData{ID: s.ID, Date: s.Date, Code: s.Code, Claimed: s.Claimed})
	}
	total := snap.Rewards.TotalPointsEarned
	return views.RenderRewardsPanel(views.RewardsPanelData{
		Points:      points,
		Level:       level,
		ToNextLevel: level*rewards.PointsPerLevel - points,
		Streak:      snap.Profile.Streak,
		DailyCount:  snap.Rewards.DailyPoints.Count,
		DailyLimit:  rewards.DailyLimit,
		TotalEarned: total,
		Saplings:    saplings,
		NextSapling: max((len(saplings)+1)*rewards.PointsPerSapling-points, 0),
	})
}

func (m Model) handleRewardsKey(msg tea.KeyMsg) Model {
	saplings := m.Planner.Saplings()
	switch msg.String() {
	case "j", "down":
		if m.SaplingCursor < len(saplings)-1 {
			m.SaplingCursor++
		}
	case "k", "up":
		if m.SaplingCursor > 0 {
			m.SaplingCursor--
		}
	case "c":
		if m.SaplingCursor >= len(saplings) {
			break
		}
		s := saplings[m.SaplingCursor]
		ok, err := m.Planner.ClaimSapling(m.ctx, s.ID)
		switch {
		case err != nil:
			m.setError(err)
		case !ok:
			m.Status = StatusBar{Text: fmt.Sprintf("sapling #%s already claimed", s.ID)}
		default:
			m.Status = StatusBar{Text: fmt.Sprintf("claimed sapling #%s", s.ID)}
		}
	case "v":
		if m.SaplingCursor >= len(saplings) {
			break
		}
		s := saplings[m.SaplingCursor]
		if m.Planner.VerifySapling(m.ctx, s.Code) {
			m.Status = StatusBar{Text: fmt.Sprintf("code for #%s verified", s.ID)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("code for #%s does not verify", s.ID), IsError: true}
		}
	}
	return m
}

func (m Model) renderNotesView() string {
	notes := m.Planner.Snapshot().Notes
	var md strings.Builder
	for i, n := range notes {
		marker := ""
		if i == m.NoteCursor {
			marker = "**>** "
		}
		md.WriteString(fmt.Sprintf("- %s%s\n", marker, n.Content))
	}
	dark := m.Planner.Snapshot().Profile.Settings.DarkMode
	return views.RenderNotesPanel(views.NotesPanelData{
		Count:    len(notes),
		Rendered: views.RenderMarkdown(md.String(), dark),
	})
}

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	notes := m.Planner.Snapshot().Notes
	switch msg.String() {
	case "j", "down":
		if m.NoteCursor < len(notes)-1 {
			m.NoteCursor++
		}
	case "k", "up":
		if m.NoteCursor > 0 {
			m.NoteCursor--
		}
	case "d":
		if m.NoteCursor >= len(notes) {
			break
		}
		if _, err := m.Planner.DeleteNote(m.ctx, notes[m.NoteCursor].ID); err != nil {
			m.setError(err)
			break
		}
		m.Status = StatusBar{Text: "note deleted"}
		if m.NoteCursor > 0 && m.NoteCursor >= len(notes)-1 {
			m.NoteCursor--
		}
	}
	return m
}
