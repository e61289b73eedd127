package agenda

import (
	"testing"
	"time"

	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
)

func daily(id, start, end string) model.Task {
	return model.Task{ID: id, Title: id, StartTime: start, EndTime: end, Recurrence: model.RecurrenceDaily, Days: model.AllWeekdays()}
}

func oneOff(id, date, start, end string) model.Task {
	d := date
	return model.Task{ID: id, Title: id, StartTime: start, EndTime: end, Recurrence: model.RecurrenceNone, Date: &d}
}

func TestOccursOnWeekdaysAcrossLeapYear(t *testing.T) {
	task := model.Task{ID: "mwf", Recurrence: model.RecurrenceWeekdays, Days: []int{1, 3, 5}}
	day := time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 400; i++ {
		date := day.Format(clock.DateLayout)
		wd, err := clock.WeekdayOf(date)
		if err != nil {
			t.Fatalf("weekday of %s: %v", date, err)
		}
		want := day.Weekday() == time.Monday || day.Weekday() == time.Wednesday || day.Weekday() == time.Friday
		if got := OccursOn(task, date, wd); got != want {
			t.Fatalf("OccursOn(%s) = %v, want %v", date, got, want)
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestOccursOnNoneAndDaily(t *testing.T) {
	single := oneOff("x", "2024-06-05", "09:00", "10:00")
	if !OccursOn(single, "2024-06-05", 3) || OccursOn(single, "2024-06-06", 4) {
		t.Fatal("one-off task should occur only on its date")
	}
	if !OccursOn(daily("d", "09:00", "10:00"), "2031-01-01", 3) {
		t.Fatal("daily task should occur every day")
	}
}

func TestResolveSuppressesExceptionDates(t *testing.T) {
	task := daily("d", "09:00", "10:00")
	task.DeletedDates = []string{"2024-06-05"}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		date := day.Format(clock.DateLayout)
		got := Resolve([]model.Task{task}, date)
		if date == "2024-06-05" && len(got) != 0 {
			t.Fatalf("expected exception on %s to suppress occurrence", date)
		}
		if date != "2024-06-05" && len(got) != 1 {
			t.Fatalf("expected occurrence on %s, got %d", date, len(got))
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestResolveSortsStableByStart(t *testing.T) {
	tasks := []model.Task{
		daily("late", "18:00", "19:00"),
		daily("first-tie", "09:00", "09:30"),
		oneOff("other-day", "2024-06-06", "08:00", "08:30"),
		daily("second-tie", "09:00", "10:00"),
		daily("early", "07:15", "07:45"),
	}
	got := Resolve(tasks, "2024-06-05")
	want := []string{"early", "first-tie", "second-tie", "late"}
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestResolveInvalidDate(t *testing.T) {
	if got := Resolve([]model.Task{daily("d", "09:00", "10:00")}, "not-a-date"); len(got) != 0 {
		t.Fatalf("expected no occurrences for invalid date, got %d", len(got))
	}
}

func TestClustersPartition(t *testing.T) {
	occ := []model.Task{
		daily("a", "09:00", "10:00"),
		daily("b", "09:30", "10:30"),
		daily("c", "11:00", "12:00"),
	}
	got := Clusters(occ)
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(got))
	}
	if len(got[0]) != 2 || got[0][0].ID != "a" || got[0][1].ID != "b" {
		t.Fatalf("unexpected first cluster: %+v", got[0])
	}
	if len(got[1]) != 1 || got[1][0].ID != "c" {
		t.Fatalf("unexpected second cluster: %+v", got[1])
	}
}

func TestClustersChainAndTouching(t *testing.T) {
	occ := []model.Task{
		daily("a", "08:00", "12:00"),
		daily("b", "09:00", "09:30"),
		daily("c", "11:30", "13:00"),
		daily("d", "13:00", "14:00"),
	}
	got := Clusters(occ)
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(got))
	}
	if len(got[0]) != 3 || got[0][2].ID != "c" {
		t.Fatalf("expected a,b,c chained, got %+v", got[0])
	}
	if got[1][0].ID != "d" {
		t.Fatalf("touching interval should open a new cluster, got %+v", got[1])
	}
	if len(Clusters(nil)) != 0 {
		t.Fatal("expected no clusters for empty input")
	}
}

func momentAt(date string, hh, mm int) clock.Moment {
	d, _ := clock.ParseDate(date)
	return clock.At(time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, time.Local))
}

func TestCurrentOrNext(t *testing.T) {
	date := "2024-06-05"
	a := daily("a", "09:00", "10:00")
	b := daily("b", "11:00", "12:00")

	cases := []struct {
		name  string
		tasks []model.Task
		hh    int
		mm    int
		kind  Kind
		id    string
	}{
		{"no tasks", nil, 10, 0, KindIdle, ""},
		{"before first", []model.Task{a, b}, 8, 0, KindNext, "a"},
		{"start boundary", []model.Task{a, b}, 9, 0, KindCurrent, "a"},
		{"end boundary", []model.Task{a, b}, 10, 0, KindCurrent, "a"},
		{"gap", []model.Task{a, b}, 10, 30, KindNext, "b"},
		{"after last", []model.Task{a, b}, 13, 0, KindDayEnded, ""},
	}
	for _, tc := range cases {
		st := CurrentOrNext(tc.tasks, momentAt(date, tc.hh, tc.mm))
		if st.Kind != tc.kind {
			t.Fatalf("%s: kind = %s, want %s", tc.name, st.Kind, tc.kind)
		}
		if tc.id != "" && (st.Task == nil || st.Task.ID != tc.id) {
			t.Fatalf("%s: expected task %s, got %+v", tc.name, tc.id, st.Task)
		}
	}
}

func TestCurrentOrNextDayComplete(t *testing.T) {
	a := daily("a", "09:00", "10:00")
	a.Completed = true
	b := daily("b", "11:00", "12:00")
	b.Completed = true
	st := CurrentOrNext([]model.Task{a, b}, momentAt("2024-06-05", 10, 30))
	if st.Kind != KindDayComplete {
		t.Fatalf("expected DAY_COMPLETE, got %s", st.Kind)
	}
	st = CurrentOrNext([]model.Task{a, b}, momentAt("2024-06-05", 11, 15))
	if st.Kind != KindCurrent || st.MinutesLeft != 45 {
		t.Fatalf("current occurrence still wins over completion: %+v", st)
	}
}
