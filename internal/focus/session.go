// Package focus implements the pomodoro countdown. A session is driven by
// one-second ticks tagged with a generation so that ticks scheduled before a
// pause or reset are ignored and the countdown never runs twice.
package focus

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

type Event int

const (
	EventStale Event = iota
	EventContinue
	EventWorkDone
	EventBreakDone
)

type Session struct {
	Phase     Phase
	WorkSec   int
	BreakSec  int
	Remaining int
	Running   bool
	Completed int
	gen       int
}

func New(work, brk time.Duration) Session {
	if work <= 0 {
		work = DefaultWork
	}
	if brk <= 0 {
		brk = DefaultBreak
	}
	s := Session{
		Phase:    PhaseWork,
		WorkSec:  int(work / time.Second),
		BreakSec: int(brk / time.Second),
	}
	s.Remaining = s.total()
	return s
}

func (s Session) total() int {
	if s.Phase == PhaseBreak {
		return s.BreakSec
	}
	return s.WorkSec
}

// Gen identifies the tick chain that is currently allowed to advance the
// countdown.
func (s Session) Gen() int {
	return s.gen
}

// Toggle starts a paused session or pauses a running one. It reports
// whether the session is now running; callers schedule a tick for the
// returned generation only when it is.
func (s *Session) Toggle() (running bool, gen int) {
	s.gen++
	if s.Running {
		s.Running = false
		return false, s.gen
	}
	if s.Remaining <= 0 {
		s.Remaining = s.total()
	}
	s.Running = true
	return true, s.gen
}

// Tick advances the countdown by one second for gen.
func (s *Session) Tick(gen int) Event {
	if !s.Running || gen != s.gen {
		return EventStale
	}
	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining > 0 {
		return EventContinue
	}
	s.Running = false
	if s.Phase == PhaseWork {
		s.Completed++
		s.Phase = PhaseBreak
		s.Remaining = s.BreakSec
		return EventWorkDone
	}
	s.Phase = PhaseWork
	s.Remaining = s.WorkSec
	return EventBreakDone
}

func (s *Session) Reset() {
	s.gen++
	s.Running = false
	s.Remaining = s.total()
}

// Skip jumps to the other phase without crediting the current one.
func (s *Session) Skip() {
	s.gen++
	s.Running = false
	if s.Phase == PhaseWork {
		s.Phase = PhaseBreak
	} else {
		s.Phase = PhaseWork
	}
	s.Remaining = s.total()
}

// Progress is the elapsed fraction of the current phase.
func (s Session) Progress() float64 {
	total := s.total()
	if total <= 0 {
		return 0
	}
	return float64(total-s.Remaining) / float64(total)
}

func (s Session) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Remaining/60, s.Remaining%60)
}
