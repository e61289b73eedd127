package model

import (
	"errors"
	"fmt"
	"sort"
)

type Recurrence string

const (
	RecurrenceNone     Recurrence = "none"
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekdays Recurrence = "weekdays"
)

var (
	ErrInvalidRecurrence = errors.New("model: invalid recurrence")
	ErrInvalidWeekday    = errors.New("model: invalid weekday index")
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekdays:
		return true
	default:
		return false
	}
}

// AllWeekdays is the conventional days value for daily tasks, 0=Sunday..6=Saturday.
func AllWeekdays() []int {
	return []int{0, 1, 2, 3, 4, 5, 6}
}

// NormalizeDays sorts and de-duplicates weekday indices.
func NormalizeDays(days []int) ([]int, error) {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}
