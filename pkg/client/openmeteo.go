package client

import (
	"context"
	"fmt"

	"idleview/internal/models"
	"idleview/internal/settings"

	"go.uber.org/zap"
)

// OpenMeteoClient fetches current conditions plus daily sunrise/sunset from
// Open-Meteo (no API key required).
type OpenMeteoClient struct {
	*BaseClient
	baseURL string
}

type openMeteoResponse struct {
	Timezone string `json:"timezone"`
	Current  struct {
		Temperature2M      float64 `json:"temperature_2m"`
		RelativeHumidity2M float64 `json:"relative_humidity_2m"`
		Rain               float64 `json:"rain"`
		Snowfall           float64 `json:"snowfall"`
		CloudCover         float64 `json:"cloudcover"`
		WindSpeed10M       float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

func NewOpenMeteoClient(baseURL string, config ClientConfig, logger *zap.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		BaseClient: NewBaseClient("openmeteo", config, logger),
		baseURL:    baseURL,
	}
}

// Weather fetches current conditions at the given coordinates, converting
// temperature and wind speed into the units the settings document selects.
// Unknown unit labels fall back to the metric defaults.
func (c *OpenMeteoClient) Weather(ctx context.Context, latitude, longitude float64, doc settings.Settings) (*models.WeatherData, error) {
	url := fmt.Sprintf(
		"%s/forecast?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,rain,snowfall,cloudcover,wind_speed_10m&daily=sunrise,sunset&timezone=auto",
		c.baseURL, latitude, longitude)

	var response openMeteoResponse
	if err := c.GetJSON(ctx, url, nil, &response); err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}

	temperature := response.Current.Temperature2M
	if doc.Units.TemperatureUnit == "fahrenheit" {
		temperature = temperature*9/5 + 32
	}

	windSpeed := response.Current.WindSpeed10M
	windLabel := "km/h"
	switch doc.Units.WindSpeedUnit {
	case "mph":
		windSpeed *= 0.621371
		windLabel = "mph"
	case "ms":
		windSpeed /= 3.6
		windLabel = "m/s"
	}

	var sunrise, sunset string
	if len(response.Daily.Sunrise) > 0 {
		sunrise = response.Daily.Sunrise[0]
	}
	if len(response.Daily.Sunset) > 0 {
		sunset = response.Daily.Sunset[0]
	}

	return &models.WeatherData{
		Temperature:     temperature,
		TemperatureUnit: doc.Units.TemperatureUnit,
		Humidity:        response.Current.RelativeHumidity2M,
		WindSpeed:       windSpeed,
		WindSpeedUnit:   doc.Units.WindSpeedUnit,
		WindSpeedLabel:  windLabel,
		CloudCover:      response.Current.CloudCover,
		Rain:            response.Current.Rain,
		Snowfall:        response.Current.Snowfall,
		Sunrise:         sunrise,
		Sunset:          sunset,
		Timezone:        response.Timezone,
	}, nil
}
