package agenda

import (
	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
)

type Kind string

const (
	KindCurrent     Kind = "CURRENT"
	KindNext        Kind = "NEXT"
	KindDayComplete Kind = "DAY_COMPLETE"
	KindDayEnded    Kind = "DAY_ENDED"
	KindIdle        Kind = "IDLE"
)

type Status struct {
	Kind Kind
	// Task is set for KindCurrent and KindNext.
	Task *model.Task
	// MinutesLeft counts down to the end of the current occurrence or the
	// start of the next one.
	MinutesLeft int
	Remaining   int
	Total       int
}

// CurrentOrNext resolves today's occurrences against now. Occurrence
// windows are inclusive at both ends. "No tasks" and "free time before the
// first task" are both reported as KindIdle.
func CurrentOrNext(tasks []model.Task, now clock.Moment) Status {
	occ := Resolve(tasks, now.Date)
	st := Status{Kind: KindIdle, Total: len(occ)}
	if len(occ) == 0 {
		return st
	}

	lastEnd := -1
	for _, o := range occ {
		if !o.Completed {
			st.Remaining++
		}
		if end := minuteOf(o.EndTime); end > lastEnd {
			lastEnd = end
		}
	}

	for i := range occ {
		start, end := minuteOf(occ[i].StartTime), minuteOf(occ[i].EndTime)
		if start <= now.Minute && now.Minute <= end {
			task := occ[i]
			st.Kind = KindCurrent
			st.Task = &task
			st.MinutesLeft = end - now.Minute
			return st
		}
	}

	if st.Remaining == 0 {
		st.Kind = KindDayComplete
		return st
	}

	for i := range occ {
		start := minuteOf(occ[i].StartTime)
		if start > now.Minute {
			task := occ[i]
			st.Kind = KindNext
			st.Task = &task
			st.MinutesLeft = start - now.Minute
			return st
		}
	}

	if now.Minute > lastEnd {
		st.Kind = KindDayEnded
	}
	return st
}
