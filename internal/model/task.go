package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/sprout/internal/clock"
)

var (
	ErrEmptyTitle    = errors.New("model: task title is required")
	ErrInvalidTime   = errors.New("model: invalid task time")
	ErrInvalidDate   = errors.New("model: invalid task date")
	ErrInvalidWindow = errors.New("model: task end time before start time")
)

// Task is a schedulable template. Occurrences are derived from Recurrence
// minus DeletedDates; Date is set only for RecurrenceNone and Days only
// matters for RecurrenceWeekdays.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	Completed    bool       `json:"completed"`
	Recurrence   Recurrence `json:"recurrence"`
	Date         *string    `json:"date"`
	Days         []int      `json:"days"`
	DeletedDates []string   `json:"deletedDates"`
	CreatedAt    int64      `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	start, err := clock.ParseHHMM(t.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidTime, t.StartTime)
	}
	end, err := clock.ParseHHMM(t.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidTime, t.EndTime)
	}
	if end < start {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, t.StartTime, t.EndTime)
	}
	switch t.Recurrence {
	case RecurrenceNone:
		if t.Date == nil || !clock.ValidDate(*t.Date) {
			return fmt.Errorf("%w: one-off task needs a YYYY-MM-DD date", ErrInvalidDate)
		}
	case RecurrenceDaily:
		if t.Date != nil {
			return fmt.Errorf("%w: recurring task must not carry a date", ErrInvalidDate)
		}
	case RecurrenceWeekdays:
		if t.Date != nil {
			return fmt.Errorf("%w: recurring task must not carry a date", ErrInvalidDate)
		}
		if len(t.Days) == 0 {
			return fmt.Errorf("%w: weekdays recurrence needs at least one day", ErrInvalidRecurrence)
		}
		if _, err := NormalizeDays(t.Days); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.Recurrence)
	}
	for _, d := range t.DeletedDates {
		if !clock.ValidDate(d) {
			return fmt.Errorf("%w: exception %q", ErrInvalidDate, d)
		}
	}
	return nil
}

// HasException reports whether date is in the task's exception list.
func (t Task) HasException(date string) bool {
	return slices.Contains(t.DeletedDates, date)
}

func (t Task) Clone() Task {
	out := t
	if t.Date != nil {
		d := *t.Date
		out.Date = &d
	}
	if t.Days != nil {
		out.Days = slices.Clone(t.Days)
	}
	if t.DeletedDates != nil {
		out.DeletedDates = slices.Clone(t.DeletedDates)
	}
	return out
}

// Note is a freestanding text entry, kept newest-first.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}
