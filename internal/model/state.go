package model

import (
	"maps"
	"slices"
)

type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

type Settings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	DarkMode             bool   `json:"darkMode"`
	WakeTime             string `json:"wakeTime"`
	SleepTime            string `json:"sleepTime"`
	Meals                Meals  `json:"meals"`
}

type Water struct {
	Goal      int   `json:"goal"`
	LastDrink int64 `json:"lastDrink"`
	Reminders bool  `json:"reminders"`
}

// Profile is the singleton user aggregate. Points never go below zero.
type Profile struct {
	Points         int      `json:"points"`
	Streak         int      `json:"streak"`
	LastActiveDate string   `json:"lastActiveDate"`
	SelectedDate   string   `json:"selectedDate"`
	LastBountyDate string   `json:"lastBountyDate"`
	Water          Water    `json:"water"`
	Settings       Settings `json:"settings"`
}

// Sapling is a minted reward token. Saplings are never revoked.
type Sapling struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Code    string `json:"code"`
	Claimed bool   `json:"claimed"`
}

type DailyPoints struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Rewards struct {
	Saplings             []Sapling   `json:"saplings"`
	DailyPoints          DailyPoints `json:"dailyPoints"`
	TotalPointsEarned    int         `json:"totalPointsEarned"`
	HydrationAwardedDate string      `json:"hydrationAwardedDate,omitempty"`
}

type WeatherCache struct {
	Temp        float64 `json:"temp"`
	Code        int     `json:"code"`
	IsDay       bool    `json:"isDay"`
	LastFetched int64   `json:"lastFetched"`
}

// State is the whole persisted aggregate; export and import use this shape.
type State struct {
	Tasks     []Task         `json:"tasks"`
	Notes     []Note         `json:"notes"`
	Profile   Profile        `json:"profile"`
	Hydration map[string]int `json:"hydration"`
	Rewards   Rewards        `json:"rewards"`
	Weather   *WeatherCache  `json:"weather,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: false,
		DarkMode:             false,
		WakeTime:             "07:00",
		SleepTime:            "23:00",
		Meals: Meals{
			Breakfast: "08:00",
			Lunch:     "13:00",
			Dinner:    "19:30",
		},
	}
}

func DefaultState() State {
	return State{
		Tasks: []Task{},
		Notes: []Note{},
		Profile: Profile{
			Water: Water{
				Goal:      8,
				Reminders: true,
			},
			Settings: DefaultSettings(),
		},
		Hydration: map[string]int{},
		Rewards: Rewards{
			Saplings: []Sapling{},
		},
	}
}

// Normalize replaces nil collections with empty ones so the encoded form is
// stable across save/load.
func (s *State) Normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Notes == nil {
		s.Notes = []Note{}
	}
	if s.Hydration == nil {
		s.Hydration = map[string]int{}
	}
	if s.Rewards.Saplings == nil {
		s.Rewards.Saplings = []Sapling{}
	}
	for i := range s.Tasks {
		if s.Tasks[i].DeletedDates == nil {
			s.Tasks[i].DeletedDates = []string{}
		}
	}
}

func (s State) Clone() State {
	out := s
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		for i, t := range s.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	if s.Notes != nil {
		out.Notes = slices.Clone(s.Notes)
	}
	if s.Hydration != nil {
		out.Hydration = maps.Clone(s.Hydration)
	}
	if s.Rewards.Saplings != nil {
		out.Rewards.Saplings = slices.Clone(s.Rewards.Saplings)
	}
	if s.Weather != nil {
		w := *s.Weather
		out.Weather = &w
	}
	return out
}

func (s State) FindTask(id string) (int, bool) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
