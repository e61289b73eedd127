// Package clock normalizes wall-clock instants into the local calendar date,
// weekday index and HH:MM time-of-day strings the planner works with.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidTime = errors.New("clock: invalid HH:MM time")
	ErrInvalidDate = errors.New("clock: invalid YYYY-MM-DD date")
)

// Moment is "now" broken into the representations used throughout the app.
type Moment struct {
	At      time.Time
	Date    string
	Weekday int
	Time    string
	Minute  int
}

func At(t time.Time) Moment {
	return Moment{
		At:      t,
		Date:    t.Format(DateLayout),
		Weekday: int(t.Weekday()),
		Time:    t.Format("15:04"),
		Minute:  t.Hour()*60 + t.Minute(),
	}
}

func (m Moment) Hour() int {
	return m.Minute / 60
}

// UnixMilli returns the instant as JavaScript-style epoch milliseconds, the
// timestamp encoding used in persisted state.
func (m Moment) UnixMilli() int64 {
	return m.At.UnixMilli()
}

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

func ValidDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// WeekdayOf returns 0 (Sunday) through 6 (Saturday) for a YYYY-MM-DD date.
func WeekdayOf(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

func ShiftDate(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// ParseHHMM converts a zero-padded 24-hour "HH:MM" string to minute-of-day.
func ParseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

func ValidHHMM(s string) bool {
	_, err := ParseHHMM(s)
	return err == nil
}

// FormatHHMM wraps minute-of-day into [0, 1440) before formatting.
func FormatHHMM(minute int) string {
	minute %= MinutesPerDay
	if minute < 0 {
		minute += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// AddMinutes shifts an HH:MM string, wrapping around midnight.
func AddMinutes(hhmm string, delta int) (string, error) {
	m, err := ParseHHMM(hhmm)
	if err != nil {
		return "", err
	}
	return FormatHHMM(m + delta), nil
}
