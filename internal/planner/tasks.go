package planner

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/rewards"
)

// TaskInput carries the user-editable task fields. Date defaults to the
// selected date for one-off tasks; Days is ignored unless Recurrence is
// weekdays.
type TaskInput struct {
	Title      string
	StartTime  string
	EndTime    string
	Recurrence model.Recurrence
	Date       string
	Days       []int
}

func (p *Planner) buildTask(in TaskInput, base model.Task) (model.Task, error) {
	t := base
	t.Title = strings.TrimSpace(in.Title)
	t.StartTime = strings.TrimSpace(in.StartTime)
	t.EndTime = strings.TrimSpace(in.EndTime)
	t.Recurrence = in.Recurrence
	if t.Recurrence == "" {
		t.Recurrence = model.RecurrenceNone
	}
	t.Date = nil
	switch t.Recurrence {
	case model.RecurrenceNone:
		date := strings.TrimSpace(in.Date)
		if date == "" {
			date = p.state.Profile.SelectedDate
		}
		t.Date = &date
		t.Days = []int{}
	case model.RecurrenceDaily:
		t.Days = model.AllWeekdays()
	case model.RecurrenceWeekdays:
		days, err := model.NormalizeDays(in.Days)
		if err != nil {
			return model.Task{}, err
		}
		t.Days = days
	}
	if t.DeletedDates == nil {
		t.DeletedDates = []string{}
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (p *Planner) AddTask(ctx context.Context, in TaskInput) (model.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(p.today())
	t, err := p.buildTask(in, model.Task{
		ID:        uuid.NewString(),
		CreatedAt: p.now().UnixMilli(),
	})
	if err != nil {
		return model.Task{}, errors.Join(err, p.commitIf(ctx, rolled))
	}
	p.state.Tasks = append(p.state.Tasks, t)
	p.logger.Debug("task added", "task", t.ID, "recurrence", t.Recurrence)
	return t.Clone(), p.commit(ctx)
}

// EditTask replaces the editable fields of id, keeping its completion,
// exceptions and creation time. A missing id reports false.
func (p *Planner) EditTask(ctx context.Context, id string, in TaskInput) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(p.today())
	idx, ok := p.state.FindTask(id)
	if !ok {
		return false, p.commitIf(ctx, rolled)
	}
	t, err := p.buildTask(in, p.state.Tasks[idx].Clone())
	if err != nil {
		return false, errors.Join(err, p.commitIf(ctx, rolled))
	}
	p.state.Tasks[idx] = t
	return true, p.commit(ctx)
}

// ToggleTask flips completion and awards or deducts TaskCompletePoints. The
// toggle persists even when the daily cap rejects the award.
func (p *Planner) ToggleTask(ctx context.Context, id string) (rewards.Result, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	today := p.today()
	rolled := p.rollover(today)
	idx, ok := p.state.FindTask(id)
	if !ok {
		return rewards.Result{}, false, p.commitIf(ctx, rolled)
	}
	task := &p.state.Tasks[idx]
	task.Completed = !task.Completed
	amount := rewards.TaskCompletePoints
	if !task.Completed {
		amount = -amount
	}
	res := p.award(ctx, amount, rewards.SourceTask, task.Title, today)
	return res, true, p.commit(ctx)
}

// DeleteOccurrence suppresses id on date. One-off tasks have a single
// occurrence and are removed outright.
func (p *Planner) DeleteOccurrence(ctx context.Context, id, date string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(p.today())
	idx, ok := p.state.FindTask(id)
	if !ok {
		return false, p.commitIf(ctx, rolled)
	}
	task := &p.state.Tasks[idx]
	if task.Recurrence == model.RecurrenceNone {
		p.state.Tasks = slices.Delete(p.state.Tasks, idx, idx+1)
		return true, p.commit(ctx)
	}
	if task.HasException(date) {
		return false, p.commitIf(ctx, rolled)
	}
	task.DeletedDates = append(task.DeletedDates, date)
	return true, p.commit(ctx)
}

func (p *Planner) DeleteTask(ctx context.Context, id string) (bool, error) {
	n, err := p.DeleteTasks(ctx, []string{id})
	return n > 0, err
}

// DeleteTasks removes every listed task and returns how many were found.
func (p *Planner) DeleteTasks(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(p.today())
	before := len(p.state.Tasks)
	p.state.Tasks = slices.DeleteFunc(p.state.Tasks, func(t model.Task) bool {
		_, ok := drop[t.ID]
		return ok
	})
	removed := before - len(p.state.Tasks)
	if removed == 0 {
		return 0, p.commitIf(ctx, rolled)
	}
	return removed, p.commit(ctx)
}

// AddNote inserts at the head so notes list newest first.
func (p *Planner) AddNote(ctx context.Context, content string) (model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Note{}, ErrEmptyNote
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover(p.today())
	n := model.Note{ID: uuid.NewString(), Content: content, CreatedAt: p.now().UnixMilli()}
	p.state.Notes = slices.Insert(p.state.Notes, 0, n)
	return n, p.commit(ctx)
}

func (p *Planner) DeleteNote(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(p.today())
	before := len(p.state.Notes)
	p.state.Notes = slices.DeleteFunc(p.state.Notes, func(n model.Note) bool { return n.ID == id })
	if len(p.state.Notes) == before {
		return false, p.commitIf(ctx, rolled)
	}
	return true, p.commit(ctx)
}
