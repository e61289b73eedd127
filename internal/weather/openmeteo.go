// Package weather adapts the Open-Meteo current-conditions endpoint to the
// planner's weather provider contract.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

var ErrNoLocation = errors.New("weather: latitude and longitude are required")

type OpenMeteo struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Client    *http.Client
}

func NewOpenMeteo(lat, lon float64) (*OpenMeteo, error) {
	if lat == 0 && lon == 0 {
		return nil, ErrNoLocation
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("weather: coordinates out of range: %v,%v", lat, lon)
	}
	return &OpenMeteo{
		BaseURL:   DefaultBaseURL,
		Latitude:  lat,
		Longitude: lon,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type currentResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
		IsDay       int     `json:"is_day"`
	} `json:"current"`
}

func (o *OpenMeteo) Current(ctx context.Context) (float64, int, bool, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(o.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(o.Longitude, 'f', 4, 64))
	q.Set("current", "temperature_2m,weather_code,is_day")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, false, err
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, false, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}
	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, false, fmt.Errorf("weather: decode: %w", err)
	}
	c := body.Current
	return c.Temperature, c.WeatherCode, c.IsDay == 1, nil
}

// Describe maps a WMO weather code to a short label.
func Describe(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "showers"
	case code >= 95:
		return "storm"
	default:
		return "unknown"
	}
}
