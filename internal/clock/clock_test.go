package clock

import (
	"errors"
	"testing"
	"time"
)

func TestAtNormalizesMoment(t *testing.T) {
	now := time.Date(2026, 2, 9, 7, 5, 30, 0, time.Local) // Monday
	m := At(now)
	if m.Date != "2026-02-09" || m.Weekday != 1 || m.Time != "07:05" || m.Minute != 425 {
		t.Fatalf("unexpected moment: %+v", m)
	}
	if m.Hour() != 7 {
		t.Fatalf("unexpected hour: %d", m.Hour())
	}
}

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:30", 0, false},
		{"09:60", 0, false},
		{"ab:cd", 0, false},
		{"+9:00", 0, false},
		{"-0:30", 0, false},
		{" 9:00", 0, false},
		{"1+:00", 0, false},
		{"09:+5", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseHHMM(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseHHMM(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("ParseHHMM(%q) expected ErrInvalidTime, got %v", tc.in, err)
		}
	}
}

func TestAddMinutesWrapsMidnight(t *testing.T) {
	got, err := AddMinutes("00:10", -30)
	if err != nil {
		t.Fatalf("add minutes: %v", err)
	}
	if got != "23:40" {
		t.Fatalf("expected 23:40, got %s", got)
	}
	got, _ = AddMinutes("23:50", 20)
	if got != "00:10" {
		t.Fatalf("expected 00:10, got %s", got)
	}
}

func TestWeekdayOfAndShiftDate(t *testing.T) {
	wd, err := WeekdayOf("2024-02-29")
	if err != nil {
		t.Fatalf("weekday: %v", err)
	}
	if wd != 4 {
		t.Fatalf("expected Thursday (4), got %d", wd)
	}
	next, err := ShiftDate("2024-02-28", 2)
	if err != nil || next != "2024-03-01" {
		t.Fatalf("unexpected shift result: %s %v", next, err)
	}
	if _, err := WeekdayOf("2024-13-01"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
