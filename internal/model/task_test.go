package model

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestTaskValidateSuccess(t *testing.T) {
	cases := []Task{
		{ID: "t1", Title: "Dentist", StartTime: "09:00", EndTime: "10:00", Recurrence: RecurrenceNone, Date: strPtr("2026-02-09")},
		{ID: "t2", Title: "Stretch", StartTime: "07:00", EndTime: "07:00", Recurrence: RecurrenceDaily, Days: AllWeekdays()},
		{ID: "t3", Title: "Standup", StartTime: "09:30", EndTime: "09:45", Recurrence: RecurrenceWeekdays, Days: []int{1, 2, 3, 4, 5}},
	}
	for _, task := range cases {
		if err := task.Validate(); err != nil {
			t.Fatalf("expected %s valid, got error: %v", task.ID, err)
		}
	}
}

func TestTaskValidateFailures(t *testing.T) {
	base := Task{ID: "t1", Title: "Gym", StartTime: "18:00", EndTime: "19:00", Recurrence: RecurrenceDaily}

	task := base
	task.Title = "  "
	if err := task.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	task = base
	task.StartTime = "7:00"
	if err := task.Validate(); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}

	task = base
	task.EndTime = "17:00"
	if err := task.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	task = base
	task.Recurrence = RecurrenceNone
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	task = base
	task.Recurrence = RecurrenceWeekdays
	if err := task.Validate(); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got %v", err)
	}

	task.Days = []int{1, 7}
	if err := task.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("expected ErrInvalidWeekday, got %v", err)
	}

	task = base
	task.Recurrence = Recurrence("monthly")
	if err := task.Validate(); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got %v", err)
	}
}

func TestNormalizeDays(t *testing.T) {
	got, err := NormalizeDays([]int{5, 1, 3, 1})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	task := Task{ID: "t1", Date: strPtr("2026-02-09"), Days: []int{1}, DeletedDates: []string{"2026-02-10"}}
	cp := task.Clone()
	*cp.Date = "2027-01-01"
	cp.Days[0] = 4
	cp.DeletedDates[0] = "x"
	if *task.Date != "2026-02-09" || task.Days[0] != 1 || task.DeletedDates[0] != "2026-02-10" {
		t.Fatalf("clone shares memory with original: %+v", task)
	}
}

func TestClassifyIconFirstMatchWins(t *testing.T) {
	cases := []struct {
		title string
		want  Icon
		ok    bool
	}{
		{"Drink water", IconHydration, true},
		{"Lunch with team", IconMeal, true},
		{"Morning RUN", IconFitness, true},
		{"Read a book", IconStudy, true},
		{"Water the plants after workout", IconHydration, true},
		{"Taxes", "", false},
	}
	for _, tc := range cases {
		got, ok := ClassifyIcon(tc.title)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ClassifyIcon(%q) = %q,%v; want %q,%v", tc.title, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStateNormalizeAndClone(t *testing.T) {
	var s State
	s.Tasks = []Task{{ID: "a"}}
	s.Normalize()
	if s.Notes == nil || s.Hydration == nil || s.Rewards.Saplings == nil || s.Tasks[0].DeletedDates == nil {
		t.Fatalf("normalize left nil collections: %+v", s)
	}
	s.Hydration["2026-02-09"] = 3
	cp := s.Clone()
	cp.Hydration["2026-02-09"] = 9
	cp.Tasks[0].ID = "b"
	if s.Hydration["2026-02-09"] != 3 || s.Tasks[0].ID != "a" {
		t.Fatal("clone shares memory with original")
	}
}
