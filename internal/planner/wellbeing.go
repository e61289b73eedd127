package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
	"github.com/sandeepkv93/sprout/internal/rewards"
)

var (
	ErrEmptyNote         = errors.New("planner: note content is required")
	ErrInvalidGoal       = errors.New("planner: water goal must be at least 1")
	ErrBountyClaimed     = errors.New("planner: wake bounty already claimed today")
	ErrOutsideWakeWindow = errors.New("planner: outside the wake-up window")
)

// DrinkWater logs one cup for today. The goal reward fires when the count
// first reaches the goal on a given date.
func (p *Planner) DrinkWater(ctx context.Context) (int, rewards.Result, error) {
	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()
	today := clock.DateKey(now)
	p.rollover(today)
	count := p.state.Hydration[today] + 1
	p.state.Hydration[today] = count
	p.state.Profile.Water.LastDrink = now.UnixMilli()

	var res rewards.Result
	if count == p.state.Profile.Water.Goal && p.state.Rewards.HydrationAwardedDate != today {
		res = p.award(ctx, rewards.HydrationGoalPoints, rewards.SourceHydration, "hydration goal", today)
		p.state.Rewards.HydrationAwardedDate = today
	}
	return count, res, p.commit(ctx)
}

// UndoWater removes one cup from today, never going below zero.
func (p *Planner) UndoWater(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	today := p.today()
	rolled := p.rollover(today)
	count, ok := p.state.Hydration[today]
	if !ok || count == 0 {
		return 0, p.commitIf(ctx, rolled)
	}
	count--
	p.state.Hydration[today] = count
	return count, p.commit(ctx)
}

func (p *Planner) HydrationToday() (count, goal int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Hydration[p.today()], p.state.Profile.Water.Goal
}

func (p *Planner) SetWaterGoal(ctx context.Context, goal int) error {
	if goal < 1 {
		return ErrInvalidGoal
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover(p.today())
	p.state.Profile.Water.Goal = goal
	return p.commit(ctx)
}

// SettingsPatch updates only the non-nil fields.
type SettingsPatch struct {
	NotificationsEnabled *bool
	DarkMode             *bool
	WaterReminders       *bool
	WakeTime             *string
	SleepTime            *string
	Breakfast            *string
	Lunch                *string
	Dinner               *string
}

func (p *Planner) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	times := []struct {
		name string
		val  *string
	}{
		{"wake", patch.WakeTime},
		{"sleep", patch.SleepTime},
		{"breakfast", patch.Breakfast},
		{"lunch", patch.Lunch},
		{"dinner", patch.Dinner},
	}
	for _, tv := range times {
		if tv.val != nil && !clock.ValidHHMM(*tv.val) {
			return fmt.Errorf("%w: %s %q", clock.ErrInvalidTime, tv.name, *tv.val)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover(p.today())
	s := &p.state.Profile.Settings
	if patch.NotificationsEnabled != nil {
		s.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.DarkMode != nil {
		s.DarkMode = *patch.DarkMode
	}
	if patch.WaterReminders != nil {
		p.state.Profile.Water.Reminders = *patch.WaterReminders
	}
	setTime(&s.WakeTime, patch.WakeTime)
	setTime(&s.SleepTime, patch.SleepTime)
	setTime(&s.Meals.Breakfast, patch.Breakfast)
	setTime(&s.Meals.Lunch, patch.Lunch)
	setTime(&s.Meals.Dinner, patch.Dinner)
	return p.commit(ctx)
}

func setTime(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func (p *Planner) CompleteFocusSession(ctx context.Context) (rewards.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	today := p.today()
	p.rollover(today)
	res := p.award(ctx, rewards.FocusSessionPoints, rewards.SourceFocus, "focus session", today)
	return res, p.commit(ctx)
}

// ClaimWakeBounty pays WakeBountyPoints once per wake window. The window is
// [wakeTime, wakeTime+60m], both ends inclusive, and may run past midnight;
// a window that opened yesterday is claimed against yesterday's date.
func (p *Planner) ClaimWakeBounty(ctx context.Context) (rewards.Result, error) {
	now := clock.At(p.now())
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(now.Date)
	wake, err := clock.ParseHHMM(p.state.Profile.Settings.WakeTime)
	if err != nil {
		return rewards.Result{}, errors.Join(err, p.commitIf(ctx, rolled))
	}
	since := (now.Minute - wake + clock.MinutesPerDay) % clock.MinutesPerDay
	if since > rewards.WakeWindowMinutes {
		err := fmt.Errorf("%w: window opens at %s", ErrOutsideWakeWindow, p.state.Profile.Settings.WakeTime)
		return rewards.Result{}, errors.Join(err, p.commitIf(ctx, rolled))
	}
	windowDate := now.Date
	if now.Minute < wake {
		if windowDate, err = clock.ShiftDate(now.Date, -1); err != nil {
			return rewards.Result{}, err
		}
	}
	if p.state.Profile.LastBountyDate == windowDate {
		return rewards.Result{}, errors.Join(ErrBountyClaimed, p.commitIf(ctx, rolled))
	}
	p.state.Profile.LastBountyDate = windowDate
	res := p.award(ctx, rewards.WakeBountyPoints, rewards.SourceBounty, "wake bounty", now.Date)
	return res, p.commit(ctx)
}

// ClaimSapling marks a sapling as redeemed. Unknown or already claimed ids
// report false.
func (p *Planner) ClaimSapling(ctx context.Context, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rolled := p.rollover(p.today())
	for i := range p.state.Rewards.Saplings {
		s := &p.state.Rewards.Saplings[i]
		if s.ID != id {
			continue
		}
		if s.Claimed {
			return false, p.commitIf(ctx, rolled)
		}
		s.Claimed = true
		return true, p.commit(ctx)
	}
	return false, p.commitIf(ctx, rolled)
}

// VerifySapling checks a presented code against the configured signer.
func (p *Planner) VerifySapling(ctx context.Context, code string) bool {
	return rewards.VerifyCode(ctx, p.signer, code)
}

func (p *Planner) Saplings() []model.Sapling {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Sapling(nil), p.state.Rewards.Saplings...)
}
