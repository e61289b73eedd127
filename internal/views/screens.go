package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID         string
	Title      string
	Start      string
	End        string
	Glyph      string
	Recurrence string
	Completed  bool
}

type TodayPanelData struct {
	Date       string
	IsToday    bool
	StatusLine string
	Clusters   [][]TaskRowData
	SelectedID string
	Water      int
	WaterGoal  int
	Weather    string
}

type FocusPanelData struct {
	Phase              string
	Timer              string
	Running            bool
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
}

type SaplingRowData struct {
	ID      string
	Date    string
	Code    string
	Claimed bool
}

type RewardsPanelData struct {
	Points      int
	Level       int
	ToNextLevel int
	Streak      int
	DailyCount  int
	DailyLimit  int
	TotalEarned int
	Saplings    []SaplingRowData
	NextSapling int
}

type NotesPanelData struct {
	Count    int
	Rendered string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	label := data.Date
	if data.IsToday {
		label += " (today)"
	}
	b.WriteString(fmt.Sprintf("day: %s\n", label))
	if data.StatusLine != "" {
		b.WriteString(data.StatusLine + "\n")
	}
	b.WriteString(fmt.Sprintf("water: %s %d/%d\n", cups(data.Water, data.WaterGoal), data.Water, data.WaterGoal))
	if data.Weather != "" {
		b.WriteString("weather: " + data.Weather + "\n")
	}
	b.WriteString("\n")
	if len(data.Clusters) == 0 {
		b.WriteString("(nothing planned)")
		return b.String()
	}
	for i, cluster := range data.Clusters {
		if len(cluster) > 1 {
			b.WriteString(fmt.Sprintf("overlap x%d\n", len(cluster)))
		}
		for _, row := range cluster {
			b.WriteString(renderTaskRow(row, row.ID == data.SelectedID, len(cluster) > 1))
			b.WriteString("\n")
		}
		if i < len(data.Clusters)-1 {
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(row TaskRowData, selected, grouped bool) string {
	cursor := " "
	if selected {
		cursor = cursorStyle.Render(">")
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	indent := ""
	if grouped {
		indent = "| "
	}
	title := row.Title
	if row.Glyph != "" {
		title = row.Glyph + " " + title
	}
	if row.Completed {
		title = doneStyle.Render(title)
	}
	rec := ""
	if row.Recurrence != "" && row.Recurrence != "none" {
		rec = " (" + row.Recurrence + ")"
	}
	return fmt.Sprintf("%s %s%s %s-%s %s%s", cursor, indent, check, row.Start, row.End, title, rec)
}

func cups(n, goal int) string {
	if goal <= 0 {
		return ""
	}
	if n > goal {
		n = goal
	}
	return strings.Repeat("o", n) + strings.Repeat(".", goal-n)
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("phase: %s (%s)\n", strings.ToUpper(data.Phase), state))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sessions completed: %d\n", data.CompletedPomodoros))
	b.WriteString("actions: [space]start/pause [r]reset [n]skip phase")
	return b.String()
}

func RenderRewardsPanel(data RewardsPanelData) string {
	var b strings.Builder
	b.WriteString("rewards:\n")
	b.WriteString(fmt.Sprintf("points: %d | level %d (%d to next)\n", data.Points, data.Level, data.ToNextLevel))
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	b.WriteString(fmt.Sprintf("earned today from tasks: %d/%d\n", data.DailyCount, data.DailyLimit))
	b.WriteString(fmt.Sprintf("lifetime earned: %d\n", data.TotalEarned))
	b.WriteString(fmt.Sprintf("next sapling in: %d\n", data.NextSapling))
	b.WriteString("\nsaplings:\n")
	if len(data.Saplings) == 0 {
		b.WriteString("(none yet)")
		return b.String()
	}
	for _, s := range data.Saplings {
		mark := " "
		if s.Claimed {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("[%s] #%s %s %s\n", mark, s.ID, s.Date, s.Code))
	}
	return strings.TrimSpace(b.String())
}

func RenderNotesPanel(data NotesPanelData) string {
	if data.Count == 0 {
		return "notes:\n(no notes; add one with /note <text>)"
	}
	return fmt.Sprintf("notes (%d):\n%s", data.Count, data.Rendered)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
