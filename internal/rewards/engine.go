// Package rewards implements the points economy: daily earning cap, levels
// and sapling minting.
package rewards

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sandeepkv93/sprout/internal/model"
)

const (
	DailyLimit       = 200
	PointsPerLevel   = 100
	PointsPerSapling = 1000

	TaskCompletePoints  = 10
	HydrationGoalPoints = 20
	FocusSessionPoints  = 50
	WakeBountyPoints    = 100

	WakeWindowMinutes = 60
	signTimeout       = 2 * time.Second
)

type Source string

const (
	SourceTask      Source = "task"
	SourceHydration Source = "hydration"
	SourceFocus     Source = "focus"
	SourceBounty    Source = "bounty"
)

type Result struct {
	Applied     bool
	CapReached  bool
	PointsDelta int
	Points      int
	LeveledUp   bool
	NewLevel    int
	Minted      []model.Sapling
}

type Engine struct {
	signer Signer
	logger *slog.Logger
}

func NewEngine(signer Signer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{signer: signer, logger: logger}
}

func Level(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// Rollover resets the daily counter when the date changed. Idempotent.
func Rollover(rw *model.Rewards, today string) {
	if rw.DailyPoints.Date != today {
		rw.DailyPoints = model.DailyPoints{Date: today, Count: 0}
	}
}

// Award applies amount (negative for penalties) to the profile. Task-sourced
// earnings that would push the day's count past DailyLimit are rejected
// whole. Points clamp at zero; saplings only ever grow.
func (e *Engine) Award(ctx context.Context, profile *model.Profile, rw *model.Rewards, amount int, source Source, today string) Result {
	Rollover(rw, today)

	if amount > 0 && source == SourceTask && rw.DailyPoints.Count+amount > DailyLimit {
		e.logger.Debug("daily cap reached", "source", source, "amount", amount, "count", rw.DailyPoints.Count)
		return Result{CapReached: true, Points: profile.Points, NewLevel: Level(profile.Points)}
	}

	oldLevel := Level(profile.Points)
	before := profile.Points
	profile.Points += amount
	if profile.Points < 0 {
		profile.Points = 0
	}
	if amount > 0 {
		rw.DailyPoints.Count += amount
		rw.TotalPointsEarned += amount
	}

	res := Result{
		Applied:     true,
		PointsDelta: profile.Points - before,
		Points:      profile.Points,
		NewLevel:    Level(profile.Points),
	}
	res.LeveledUp = res.NewLevel > oldLevel
	res.Minted = e.mint(ctx, profile.Points, rw, today)
	e.logger.Debug("points applied", "source", source, "amount", amount, "points", profile.Points)
	return res
}

func (e *Engine) mint(ctx context.Context, points int, rw *model.Rewards, today string) []model.Sapling {
	target := points / PointsPerSapling
	if target <= len(rw.Saplings) {
		return nil
	}
	minted := make([]model.Sapling, 0, target-len(rw.Saplings))
	for len(rw.Saplings) < target {
		id := fmt.Sprintf("%03d", len(rw.Saplings)+1)
		signCtx, cancel := context.WithTimeout(ctx, signTimeout)
		code, err := Code(signCtx, e.signer, id, today)
		cancel()
		if err != nil {
			e.logger.Warn("sapling code degraded", "sapling", id, "err", err)
		}
		s := model.Sapling{ID: id, Date: today, Code: code}
		rw.Saplings = append(rw.Saplings, s)
		minted = append(minted, s)
		e.logger.Info("sapling minted", "sapling", id, "date", today)
	}
	return minted
}
