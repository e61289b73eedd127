// Package update holds the bubbletea model for the terminal planner.
package update

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/sprout/internal/focus"
	"github.com/sandeepkv93/sprout/internal/notify"
	"github.com/sandeepkv93/sprout/internal/planner"
)

type View string

const (
	ViewToday   View = "Today"
	ViewFocus   View = "Focus"
	ViewRewards View = "Rewards"
	ViewNotes   View = "Notes"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today   string
	Focus   string
	Rewards string
	Notes   string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

const maxNotifications = 40

type Model struct {
	CurrentView    View
	Planner        *planner.Planner
	Focus          focus.Session
	Cursor         int
	SelectedTaskID string
	NoteCursor     int
	SaplingCursor  int
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx        context.Context
	notifier   notify.Notifier
	logger     *slog.Logger
	weather    planner.WeatherProvider
	weatherAge time.Duration

	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model
}

type Options struct {
	Notifier   notify.Notifier
	Logger     *slog.Logger
	FocusWork  time.Duration
	FocusBreak time.Duration
	// Weather is optional; without it the cached conditions are shown as is.
	Weather       planner.WeatherProvider
	WeatherMaxAge time.Duration
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// FocusTickMsg carries the generation of the tick chain that produced it.
type FocusTickMsg struct {
	Gen int
}

type HeartbeatMsg struct {
	At time.Time
}

type WeatherMsg struct {
	Fetched bool
	Err     error
}

type RemindersDeliveredMsg struct {
	Sent   int
	Failed int
}

func NewModel(ctx context.Context, p *planner.Planner, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NoopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		CurrentView: ViewToday,
		Planner:     p,
		Focus:       focus.New(opts.FocusWork, opts.FocusBreak),
		Keys: GlobalKeyMap{
			Today:   "1",
			Focus:   "2",
			Rewards: "3",
			Notes:   "4",
			Help:    "?",
			Quit:    "q",
		},
		ctx:        ctx,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		weather:    opts.Weather,
		weatherAge: opts.WeatherMaxAge,
	}
	m.initBubbleComponents()
	m.syncCursor()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add Gym 18:00-19:00 daily"
	m.commandInput.CharLimit = 200

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.Planner.Now(),
	})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
