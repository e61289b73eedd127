package update

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/sprout/internal/notify"
	"github.com/sandeepkv93/sprout/internal/planner"
	"github.com/sandeepkv93/sprout/internal/storage"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (r *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

// monday 2026-02-09 at hh:mm local
func newTestModel(t *testing.T, hh, mm int, opts Options) (Model, *planner.Planner) {
	t.Helper()
	now := time.Date(2026, 2, 9, hh, mm, 0, 0, time.Local)
	p, err := planner.New(context.Background(), storage.NewMemoryStore(), planner.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	return NewModel(context.Background(), p, opts), p
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runCommand(t *testing.T, m Model, line string) Model {
	t.Helper()
	return press(t, m, "/", line, "enter")
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Focus.Remaining != 25*60 {
		t.Fatalf("expected default 25 minute focus block, got %d", m.Focus.Remaining)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	cases := []struct {
		key  string
		want View
	}{
		{"2", ViewFocus},
		{"3", ViewRewards},
		{"4", ViewNotes},
		{"1", ViewToday},
	}
	for _, tc := range cases {
		m = press(t, m, tc.key)
		if m.CurrentView != tc.want {
			t.Fatalf("key %s: expected %q, got %q", tc.key, tc.want, m.CurrentView)
		}
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	updated, _ := m.Update(SwitchViewMsg{View: ViewRewards})
	next := updated.(Model)
	if next.CurrentView != ViewRewards {
		t.Fatalf("expected rewards view, got %q", next.CurrentView)
	}
	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewRewards {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if !next.Status.IsError || next.LastError == nil {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", next.Status)
	}
}

func TestQuitKeyReturnsQuitCmd(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestPaletteAddThenToggle(t *testing.T) {
	m, p := newTestModel(t, 7, 30, Options{})
	m = runCommand(t, m, "add Morning run 08:00-08:30 daily")
	if m.Status.IsError {
		t.Fatalf("add failed: %s", m.Status.Text)
	}
	if m.Palette.Active {
		t.Fatal("palette should close after enter")
	}
	tasks := p.Agenda("2026-02-09")
	if len(tasks) != 1 || tasks[0].Title != "Morning run" {
		t.Fatalf("unexpected agenda: %+v", tasks)
	}
	if m.SelectedTaskID != tasks[0].ID {
		t.Fatalf("expected new task selected, got %q", m.SelectedTaskID)
	}

	m = press(t, m, " ")
	snap := p.Snapshot()
	if !snap.Tasks[0].Completed || snap.Profile.Points != 10 {
		t.Fatalf("toggle not applied: completed=%v points=%d", snap.Tasks[0].Completed, snap.Profile.Points)
	}
	if !strings.Contains(m.Status.Text, "+10") {
		t.Fatalf("expected points in status, got %q", m.Status.Text)
	}

	m = press(t, m, "x")
	if p.Snapshot().Profile.Points != 0 {
		t.Fatal("untoggle should deduct the points")
	}
}

func TestPaletteErrorsStayInStatus(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	m = runCommand(t, m, "frobnicate")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
	m = runCommand(t, m, "done nothing-here")
	if !m.Status.IsError {
		t.Fatalf("expected no-match error, got %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	m = press(t, m, "/", "add x", "esc")
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("palette should be closed and cleared: %+v", m.Palette)
	}
}

func TestPaletteNoteSwitchesToNotes(t *testing.T) {
	m, p := newTestModel(t, 7, 30, Options{})
	m = runCommand(t, m, "note buy **oat milk**")
	if m.CurrentView != ViewNotes {
		t.Fatalf("expected notes view, got %q", m.CurrentView)
	}
	if notes := p.Snapshot().Notes; len(notes) != 1 {
		t.Fatalf("expected one note, got %d", len(notes))
	}
	m = press(t, m, "d")
	if notes := p.Snapshot().Notes; len(notes) != 0 {
		t.Fatalf("expected note deleted, got %d", len(notes))
	}
}

func TestTodayKeysDrinkAndNavigate(t *testing.T) {
	m, p := newTestModel(t, 7, 30, Options{})
	m = press(t, m, "w", "w", "W")
	if count, _ := p.HydrationToday(); count != 1 {
		t.Fatalf("expected 1 cup, got %d", count)
	}
	m = press(t, m, "l")
	if got := p.SelectedDate(); got != "2026-02-10" {
		t.Fatalf("expected next day, got %s", got)
	}
	m = press(t, m, "h", "h", "t")
	if got := p.SelectedDate(); got != "2026-02-09" {
		t.Fatalf("expected today, got %s", got)
	}
	_ = m
}

func TestTodayWakeBountyOnce(t *testing.T) {
	m, p := newTestModel(t, 7, 30, Options{})
	m = press(t, m, "b")
	if p.Snapshot().Profile.Points != 100 {
		t.Fatalf("expected bounty points, got %d", p.Snapshot().Profile.Points)
	}
	m = press(t, m, "b")
	if !m.Status.IsError || p.Snapshot().Profile.Points != 100 {
		t.Fatalf("second claim should be rejected: %+v", m.Status)
	}
}

func TestFocusTickGenerations(t *testing.T) {
	m, p := newTestModel(t, 7, 30, Options{FocusWork: 2 * time.Second, FocusBreak: time.Second})
	m = press(t, m, "2")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = updated.(Model)
	if cmd == nil || !m.Focus.Running {
		t.Fatal("expected running session with a tick scheduled")
	}
	stale := m.Focus.Gen()

	// pause and resume: ticks from the first chain must be ignored
	m = press(t, m, " ", " ")
	live := m.Focus.Gen()
	updated, cmd = m.Update(FocusTickMsg{Gen: stale})
	m = updated.(Model)
	if cmd != nil || m.Focus.Remaining != 2 {
		t.Fatalf("stale tick advanced the countdown: remaining=%d", m.Focus.Remaining)
	}

	updated, cmd = m.Update(FocusTickMsg{Gen: live})
	m = updated.(Model)
	if cmd == nil || m.Focus.Remaining != 1 {
		t.Fatalf("expected continued countdown, remaining=%d", m.Focus.Remaining)
	}
	updated, _ = m.Update(FocusTickMsg{Gen: live})
	m = updated.(Model)
	if m.Focus.Phase != "break" || m.Focus.Completed != 1 {
		t.Fatalf("expected break after work, got phase=%s completed=%d", m.Focus.Phase, m.Focus.Completed)
	}
	if p.Snapshot().Profile.Points != 50 {
		t.Fatalf("expected focus reward, got %d", p.Snapshot().Profile.Points)
	}
}

func TestHeartbeatQueuesAndDeliversReminders(t *testing.T) {
	rec := &recordingNotifier{}
	m, _ := newTestModel(t, 10, 0, Options{Notifier: rec})
	updated, cmd := m.Update(HeartbeatMsg{At: time.Now()})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected heartbeat to reschedule")
	}
	if len(m.Notifications) == 0 || m.Notifications[len(m.Notifications)-1].Level != string(notify.KindHydration) {
		t.Fatalf("expected hydration notification, got %+v", m.Notifications)
	}

	msg := deliverCmd(context.Background(), rec, []notify.Trigger{{Kind: notify.KindHydration, Title: "Hydration check", Body: "drink"}}, nil)()
	delivered, ok := msg.(RemindersDeliveredMsg)
	if !ok || delivered.Sent != 1 || delivered.Failed != 0 {
		t.Fatalf("unexpected delivery result: %#v", msg)
	}
	if len(rec.sent) != 1 || rec.sent[0].Title != "Hydration check" {
		t.Fatalf("unexpected sent messages: %+v", rec.sent)
	}
}

func TestRewardsClaimSapling(t *testing.T) {
	m, p := newTestModel(t, 7, 30, Options{})
	m = press(t, m, "3", "c")
	if m.Status.IsError {
		t.Fatalf("claim with no saplings should be a no-op, got %+v", m.Status)
	}
	if len(p.Saplings()) != 0 {
		t.Fatal("no saplings expected")
	}
}

func TestViewRendersEveryScreen(t *testing.T) {
	m, _ := newTestModel(t, 7, 30, Options{})
	m = runCommand(t, m, "add Team standup 09:00-09:15 weekdays:mon,wed")
	for _, key := range []string{"1", "2", "3", "4", "?"} {
		m = press(t, m, key)
		out := m.View()
		if !strings.Contains(out, "sprout") {
			t.Fatalf("view %s missing header:\n%s", m.CurrentView, out)
		}
	}
	m = press(t, m, "?", "1")
	if out := m.View(); !strings.Contains(out, "Team standup") || !strings.Contains(out, "next: Team standup") {
		t.Fatalf("today view missing task or status:\n%s", out)
	}
}

type stubWeather struct{ calls int }

func (s *stubWeather) Current(context.Context) (float64, int, bool, error) {
	s.calls++
	return 18, 0, true, nil
}

func TestWeatherRefreshUsesCache(t *testing.T) {
	provider := &stubWeather{}
	m, _ := newTestModel(t, 7, 30, Options{Weather: provider, WeatherMaxAge: 30 * time.Minute})
	for i := 0; i < 2; i++ {
		msg := m.refreshWeatherCmd()()
		if wm, ok := msg.(WeatherMsg); !ok || wm.Err != nil {
			t.Fatalf("unexpected weather msg: %#v", msg)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("expected one fetch within the cache age, got %d", provider.calls)
	}
	if out := m.View(); !strings.Contains(out, "clear") {
		t.Fatalf("expected cached weather in today view:\n%s", out)
	}

	none, _ := newTestModel(t, 7, 30, Options{})
	if none.refreshWeatherCmd() != nil {
		t.Fatal("no provider means no refresh command")
	}
}
