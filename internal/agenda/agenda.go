// Package agenda resolves which task occurrences fall on a calendar date and
// where "now" sits relative to them.
package agenda

import (
	"slices"
	"sort"

	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
)

// OccursOn evaluates the recurrence rule only; exception dates are checked
// separately with Excepted.
func OccursOn(t model.Task, date string, weekday int) bool {
	switch t.Recurrence {
	case model.RecurrenceNone:
		return t.Date != nil && *t.Date == date
	case model.RecurrenceDaily:
		return true
	case model.RecurrenceWeekdays:
		return slices.Contains(t.Days, weekday)
	default:
		return false
	}
}

func Excepted(t model.Task, date string) bool {
	return t.HasException(date)
}

// Resolve returns the tasks occurring on date sorted by start time. Ties keep
// insertion order. An unparseable date yields no occurrences.
func Resolve(tasks []model.Task, date string) []model.Task {
	weekday, err := clock.WeekdayOf(date)
	if err != nil {
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !OccursOn(t, date, weekday) || Excepted(t, date) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return minuteOf(out[i].StartTime) < minuteOf(out[j].StartTime)
	})
	return out
}

// Clusters partitions sorted occurrences into maximal runs of overlapping
// intervals in one left-to-right sweep. The running end starts at 00:00.
func Clusters(occurrences []model.Task) [][]model.Task {
	out := make([][]model.Task, 0)
	var current []model.Task
	clusterEnd := 0
	for _, occ := range occurrences {
		start := minuteOf(occ.StartTime)
		end := minuteOf(occ.EndTime)
		if len(current) > 0 && start < clusterEnd {
			current = append(current, occ)
			if end > clusterEnd {
				clusterEnd = end
			}
			continue
		}
		if len(current) > 0 {
			out = append(out, current)
		}
		current = []model.Task{occ}
		clusterEnd = end
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// minuteOf sorts malformed times first rather than failing.
func minuteOf(hhmm string) int {
	m, err := clock.ParseHHMM(hhmm)
	if err != nil {
		return -1
	}
	return m
}
