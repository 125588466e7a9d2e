package settings

import (
	"encoding/json"
	"fmt"
)

// Settings is the single persisted configuration document for an
// installation. Every field has a default, so a partial or empty JSON
// document always decodes successfully.
type Settings struct {
	Units   UnitsSettings   `json:"units"`
	Display DisplaySettings `json:"display"`
	Photos  PhotosSettings  `json:"photos"`
}

type UnitsSettings struct {
	TemperatureUnit string `json:"temperature_unit"` // "celsius" or "fahrenheit"
	TimeFormat      string `json:"time_format"`      // "24h" or "12h"
	DateFormat      string `json:"date_format"`      // "mdy", "dmy", "ymd"
	WindSpeedUnit   string `json:"wind_speed_unit"`  // "kmh", "mph", "ms"
}

type DisplaySettings struct {
	ShowHumidityWind            bool   `json:"show_humidity_wind"`
	ShowPrecipitationCloudiness bool   `json:"show_precipitation_cloudiness"`
	ShowSunriseSunset           bool   `json:"show_sunrise_sunset"`
	ShowCPUTemp                 bool   `json:"show_cpu_temp"`
	Theme                       string `json:"theme"` // "default", "nest"
}

type PhotosSettings struct {
	RefreshInterval uint64  `json:"refresh_interval"` // minutes
	PhotoQuality    Quality `json:"photo_quality"`    // "low".."maximum" or "0".."100"
}

// Quality is stored as a string but accepts a bare JSON number as well,
// since older control panels send `"photo_quality": 85`.
type Quality string

func (q *Quality) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quality(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("photo_quality must be a string or number: %w", err)
	}
	*q = Quality(n.String())
	return nil
}

// Default returns the built-in settings used on first run and as the base
// for decoding documents with missing fields.
func Default() Settings {
	return Settings{
		Units: UnitsSettings{
			TemperatureUnit: "celsius",
			TimeFormat:      "24h",
			DateFormat:      "dmy",
			WindSpeedUnit:   "kmh",
		},
		Display: DisplaySettings{
			ShowHumidityWind:            true,
			ShowPrecipitationCloudiness: true,
			ShowSunriseSunset:           true,
			ShowCPUTemp:                 false,
			Theme:                       "default",
		},
		Photos: PhotosSettings{
			RefreshInterval: 30,
			PhotoQuality:    "80",
		},
	}
}

// Decode deserializes a settings document on top of the defaults, so any
// omitted field keeps its default value. Unit labels are deliberately not
// validated against the known enums; unknown values are stored as-is and
// interpreted with a defaulted branch at the point of use.
func Decode(data []byte) (Settings, error) {
	doc := Default()
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, &ValidationError{Reason: fmt.Sprintf("invalid settings document: %v", err)}
	}
	if err := doc.validate(); err != nil {
		return Settings{}, err
	}
	return doc, nil
}

func (s Settings) validate() error {
	if s.Photos.RefreshInterval == 0 {
		return &ValidationError{Reason: "photos.refresh_interval must be greater than zero"}
	}
	return nil
}
