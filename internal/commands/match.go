package commands

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sandeepkv93/sprout/internal/model"
)

type taskTitles []model.Task

func (t taskTitles) String(i int) string { return t[i].Title }
func (t taskTitles) Len() int            { return len(t) }

// MatchTask resolves query to a task: an exact id wins, then a
// case-insensitive exact title, then the best fuzzy title match.
func MatchTask(query string, tasks []model.Task) (model.Task, bool) {
	query = strings.TrimSpace(query)
	if query == "" || len(tasks) == 0 {
		return model.Task{}, false
	}
	for _, t := range tasks {
		if t.ID == query {
			return t, true
		}
	}
	for _, t := range tasks {
		if strings.EqualFold(t.Title, query) {
			return t, true
		}
	}
	matches := fuzzy.FindFrom(query, taskTitles(tasks))
	if len(matches) == 0 {
		return model.Task{}, false
	}
	return tasks[matches[0].Index], true
}
