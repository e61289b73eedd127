package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/sprout/internal/model"
)

var ErrCorrupt = errors.New("storage: corrupt state")

type legacyEnvelope struct {
	Tasks []struct {
		Recurrence *string `json:"recurrence"`
	} `json:"tasks"`
	Profile struct {
		Water struct {
			Current *int   `json:"current"`
			Date    string `json:"date"`
		} `json:"water"`
	} `json:"profile"`
}

// Decode unmarshals raw over the defaults, so fields missing from older
// snapshots keep their default values, then migrates legacy shapes.
func Decode(raw []byte, today string) (model.State, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.State{}, ErrNotFound
	}
	st := model.DefaultState()
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var legacy legacyEnvelope
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	st.Normalize()

	for i := range st.Tasks {
		if i < len(legacy.Tasks) && legacy.Tasks[i].Recurrence != nil && *legacy.Tasks[i].Recurrence != "" {
			continue
		}
		st.Tasks[i].Recurrence = model.RecurrenceDaily
		st.Tasks[i].Days = model.AllWeekdays()
		st.Tasks[i].DeletedDates = []string{}
		st.Tasks[i].Date = nil
	}

	water := legacy.Profile.Water
	if water.Current != nil && water.Date == today {
		if _, ok := st.Hydration[today]; !ok {
			st.Hydration[today] = *water.Current
		}
	}
	return st, nil
}

func Encode(st model.State) ([]byte, error) {
	st.Normalize()
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return append(raw, '\n'), nil
}
