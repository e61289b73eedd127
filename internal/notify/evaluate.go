// Package notify decides which reminders fire on a clock tick and delivers
// them through pluggable channels.
package notify

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/sprout/internal/agenda"
	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
)

type Kind string

const (
	KindTaskStart    Kind = "task_start"
	KindTaskUpcoming Kind = "task_upcoming"
	KindHydration    Kind = "hydration"
	KindWindDown     Kind = "wind_down"
)

const (
	UpcomingLeadMinutes = 5
	WindDownLeadMinutes = 30
	HydrationGapMinutes = 60
	HydrationFirstHour  = 9
	HydrationLastHour   = 21
)

type Trigger struct {
	Kind   Kind
	TaskID string
	Title  string
	Body   string
}

type Input struct {
	Now            time.Time
	Tasks          []model.Task
	Profile        model.Profile
	HydrationToday int
}

// Evaluate is pure: identical input yields identical triggers. Callers
// invoke it once per minute boundary. Task and wind-down reminders need
// notificationsEnabled; the hydration nag needs water.reminders.
func Evaluate(in Input) []Trigger {
	now := clock.At(in.Now)
	out := make([]Trigger, 0)
	settings := in.Profile.Settings

	if settings.NotificationsEnabled {
		for _, occ := range agenda.Resolve(in.Tasks, now.Date) {
			start, err := clock.ParseHHMM(occ.StartTime)
			if err != nil {
				continue
			}
			switch start - now.Minute {
			case 0:
				out = append(out, Trigger{
					Kind:   KindTaskStart,
					TaskID: occ.ID,
					Title:  "Time for " + occ.Title,
					Body:   fmt.Sprintf("%s is starting now (%s-%s).", occ.Title, occ.StartTime, occ.EndTime),
				})
			case UpcomingLeadMinutes:
				out = append(out, Trigger{
					Kind:   KindTaskUpcoming,
					TaskID: occ.ID,
					Title:  "Up next: " + occ.Title,
					Body:   fmt.Sprintf("%s starts in %d minutes.", occ.Title, UpcomingLeadMinutes),
				})
			}
		}
	}

	if hydrationDue(in, now) {
		out = append(out, Trigger{
			Kind:  KindHydration,
			Title: "Hydration check",
			Body:  fmt.Sprintf("You're at %d of %d cups today. Time for a glass of water.", in.HydrationToday, in.Profile.Water.Goal),
		})
	}

	if settings.NotificationsEnabled {
		if sleep, err := clock.ParseHHMM(settings.SleepTime); err == nil {
			windDown := (sleep - WindDownLeadMinutes + clock.MinutesPerDay) % clock.MinutesPerDay
			if now.Minute == windDown {
				out = append(out, Trigger{
					Kind:  KindWindDown,
					Title: "Wind down",
					Body:  fmt.Sprintf("Bedtime is at %s. Start winding down.", settings.SleepTime),
				})
			}
		}
	}
	return out
}

func hydrationDue(in Input, now clock.Moment) bool {
	water := in.Profile.Water
	if !water.Reminders || now.Minute%60 != 0 {
		return false
	}
	if h := now.Hour(); h < HydrationFirstHour || h > HydrationLastHour {
		return false
	}
	if in.HydrationToday >= water.Goal {
		return false
	}
	elapsed := now.UnixMilli() - water.LastDrink
	return elapsed > int64(HydrationGapMinutes)*int64(time.Minute/time.Millisecond)
}
