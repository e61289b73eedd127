package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenMeteoCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latitude"); got != "52.5200" {
			t.Errorf("unexpected latitude %q", got)
		}
		if r.URL.Query().Get("current") == "" {
			t.Error("current fields not requested")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":21.5,"weather_code":3,"is_day":1}}`))
	}))
	defer srv.Close()

	o, err := NewOpenMeteo(52.52, 13.405)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	o.BaseURL = srv.URL
	o.Client = srv.Client()

	temp, code, isDay, err := o.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if temp != 21.5 || code != 3 || !isDay {
		t.Fatalf("unexpected conditions: %v %d %v", temp, code, isDay)
	}
}

func TestOpenMeteoErrors(t *testing.T) {
	if _, err := NewOpenMeteo(0, 0); !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
	if _, err := NewOpenMeteo(91, 0); err == nil {
		t.Fatal("expected range error")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	o, _ := NewOpenMeteo(1, 1)
	o.BaseURL = srv.URL
	if _, _, _, err := o.Current(context.Background()); err == nil {
		t.Fatal("expected status error")
	}
}

func TestDescribe(t *testing.T) {
	cases := map[int]string{0: "clear", 2: "cloudy", 45: "fog", 61: "rain", 73: "snow", 81: "showers", 95: "storm", 30: "unknown"}
	for code, want := range cases {
		if got := Describe(code); got != want {
			t.Fatalf("code %d: got %q want %q", code, got, want)
		}
	}
}
