package models

// WeatherData is a current-conditions observation from Open-Meteo, already
// converted into the units the user selected. Sunrise/sunset are the raw
// local wall-clock strings (YYYY-MM-DDTHH:MM) the provider returned.
type WeatherData struct {
	Temperature     float64 `json:"temperature"`
	TemperatureUnit string  `json:"temperature_unit"`
	Humidity        float64 `json:"humidity"`
	WindSpeed       float64 `json:"wind_speed"`
	WindSpeedUnit   string  `json:"wind_speed_unit"`
	WindSpeedLabel  string  `json:"wind_speed_label"`
	CloudCover      float64 `json:"cloudcover"`
	Rain            float64 `json:"rain"`     // mm
	Snowfall        float64 `json:"snowfall"` // cm
	Sunrise         string  `json:"sunrise"`
	Sunset          string  `json:"sunset"`
	Timezone        string  `json:"timezone"`
}

// TimeOfDay classifies an instant as dawn, day, dusk, or night. Source is
// "api" when real sunrise/sunset data was used and "fallback" otherwise.
type TimeOfDay struct {
	TimeOfDay string `json:"time_of_day"`
	Source    string `json:"source"`
}

type Season struct {
	Season string `json:"season"` // "spring", "summer", "autumn", "winter"
}

// Holiday is nil when the current date falls in no holiday window.
type Holiday struct {
	Holiday *string `json:"holiday"` // "christmas", "new year", "halloween", "easter"
}

type PhotoQuery struct {
	Query string `json:"query"`
}

type FormattedTime struct {
	Time      string `json:"time"`        // per units.time_format
	Date      string `json:"date"`        // per units.date_format
	DayOfWeek string `json:"day_of_week"` // e.g. "FRIDAY"
	Timestamp int64  `json:"timestamp"`   // unix milliseconds
}

type PrecipitationDisplay struct {
	Icon  string `json:"icon"`  // "snowflake.svg", "droplets.svg", "umbrella.svg"
	Label string `json:"label"` // "Snow", "Rain", "Precip"
	Value string `json:"value"` // "5.0 cm", "3.2 mm", "Clear"
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
}

type UnsplashPhoto struct {
	URL              string `json:"url"`
	Author           string `json:"author"`
	AuthorURL        string `json:"author_url"`
	DownloadLocation string `json:"download_location"`
}

// CurrentPhoto is what the display is showing right now, published so the
// control panel can attribute it.
type CurrentPhoto struct {
	URL       string `json:"url"`
	Author    string `json:"author"`
	AuthorURL string `json:"author_url"`
}

type CPUTemp struct {
	Value   float64 `json:"value"`   // celsius, 0 when unavailable
	Display string  `json:"display"` // "47 °C", empty when unavailable
}

type DebugInfo struct {
	PhotoAge     string `json:"photo_age"`
	Query        string `json:"query"`
	TimeSource   string `json:"time_source"`
	TimeOfDay    string `json:"time_of_day"`
	APIKeyStatus string `json:"api_key_status"`
	APIKeySource string `json:"api_key_source"`
	Temperature  string `json:"temperature"`
	Rain         string `json:"rain"`
	Snowfall     string `json:"snowfall"`
	CloudCover   string `json:"cloudcover"`
	Season       string `json:"season"`
}
