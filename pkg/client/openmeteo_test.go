package client

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"idleview/internal/settings"

	"go.uber.org/zap"
)

const openMeteoBody = `{
	"timezone": "Europe/Prague",
	"current": {
		"temperature_2m": 20.0,
		"relative_humidity_2m": 55.0,
		"rain": 1.2,
		"snowfall": 0.0,
		"cloudcover": 75.0,
		"wind_speed_10m": 36.0
	},
	"daily": {
		"sunrise": ["2025-06-10T06:00"],
		"sunset": ["2025-06-10T18:00"]
	}
}`

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		RetryDelay:     time.Millisecond,
		Multiplier:     2,
		BreakerTimeout: time.Second,
	}
}

func TestWeatherMetricUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	c := NewOpenMeteoClient(server.URL, testClientConfig(), zap.NewNop())
	weather, err := c.Weather(context.Background(), 50.07, 14.43, settings.Default())
	if err != nil {
		t.Fatalf("fetching weather: %v", err)
	}

	if weather.Temperature != 20.0 {
		t.Errorf("expected 20.0, got %f", weather.Temperature)
	}
	if weather.WindSpeed != 36.0 || weather.WindSpeedLabel != "km/h" {
		t.Errorf("unexpected wind: %f %s", weather.WindSpeed, weather.WindSpeedLabel)
	}
	if weather.Sunrise != "2025-06-10T06:00" || weather.Sunset != "2025-06-10T18:00" {
		t.Errorf("unexpected sun times: %q / %q", weather.Sunrise, weather.Sunset)
	}
	if weather.Timezone != "Europe/Prague" {
		t.Errorf("unexpected timezone: %q", weather.Timezone)
	}
}

func TestWeatherConvertedUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	doc := settings.Default()
	doc.Units.TemperatureUnit = "fahrenheit"
	doc.Units.WindSpeedUnit = "ms"

	c := NewOpenMeteoClient(server.URL, testClientConfig(), zap.NewNop())
	weather, err := c.Weather(context.Background(), 50.07, 14.43, doc)
	if err != nil {
		t.Fatalf("fetching weather: %v", err)
	}

	if weather.Temperature != 68.0 {
		t.Errorf("expected 68.0 fahrenheit, got %f", weather.Temperature)
	}
	if math.Abs(weather.WindSpeed-10.0) > 1e-9 || weather.WindSpeedLabel != "m/s" {
		t.Errorf("unexpected wind: %f %s", weather.WindSpeed, weather.WindSpeedLabel)
	}
}

func TestWeatherUnknownUnitLabelsFallBackToMetric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	doc := settings.Default()
	doc.Units.TemperatureUnit = "kelvin"
	doc.Units.WindSpeedUnit = "knots"

	c := NewOpenMeteoClient(server.URL, testClientConfig(), zap.NewNop())
	weather, err := c.Weather(context.Background(), 0, 0, doc)
	if err != nil {
		t.Fatalf("fetching weather: %v", err)
	}

	if weather.Temperature != 20.0 || weather.WindSpeed != 36.0 {
		t.Errorf("unknown labels should keep metric values: %f / %f", weather.Temperature, weather.WindSpeed)
	}
	if weather.WindSpeedLabel != "km/h" {
		t.Errorf("expected km/h label fallback, got %q", weather.WindSpeedLabel)
	}
}

func TestWeatherServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewOpenMeteoClient(server.URL, testClientConfig(), zap.NewNop())
	if _, err := c.Weather(context.Background(), 0, 0, settings.Default()); err == nil {
		t.Error("expected error for 400 response")
	}
}
