package services

import (
	"fmt"
	"strings"
	"time"

	"idleview/internal/models"
	"idleview/internal/settings"

	"go.uber.org/zap"
)

// Engine derives human-meaningful labels (season, time of day, holiday, a
// photo search query) from the clock, optional sunrise/sunset strings, and
// weather observations. Every derivation is total: missing or unparseable
// inputs degrade to a documented fallback instead of failing.
type Engine struct {
	sun    *SunTimesCache
	logger *zap.Logger
	now    func() time.Time
}

func NewEngine(sun *SunTimesCache, logger *zap.Logger) *Engine {
	return &Engine{
		sun:    sun,
		logger: logger,
		now:    time.Now,
	}
}

// Season maps the current calendar month onto a season.
func (e *Engine) Season() models.Season {
	return models.Season{Season: seasonOf(e.now())}
}

func seasonOf(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}

// TimeOfDay classifies the current instant against the supplied sun times.
// Dawn spans sunrise +/- 30 minutes and dusk spans sunset +/- 30 minutes;
// outside the dawn-to-dusk envelope is night. When the strings are missing
// or unparseable the result is always night with a "fallback" source tag.
func (e *Engine) TimeOfDay(sunriseISO, sunsetISO string) models.TimeOfDay {
	if sunriseISO != "" && sunsetISO != "" {
		if sunrise, sunset, ok := e.sun.Resolve(sunriseISO, sunsetISO); ok {
			now := naive(e.now())

			dawnStart := sunrise.Add(-30 * time.Minute)
			dawnEnd := sunrise.Add(30 * time.Minute)
			duskStart := sunset.Add(-30 * time.Minute)
			duskEnd := sunset.Add(30 * time.Minute)

			var label string
			switch {
			case now.Before(dawnStart) || now.After(duskEnd):
				label = "night"
			case !now.Before(dawnStart) && !now.After(dawnEnd):
				label = "dawn"
			case !now.Before(duskStart) && !now.After(duskEnd):
				label = "dusk"
			default:
				label = "day"
			}

			return models.TimeOfDay{TimeOfDay: label, Source: "api"}
		}
		e.logger.Debug("Unparseable sun times, using fallback",
			zap.String("sunrise", sunriseISO),
			zap.String("sunset", sunsetISO))
	}

	return models.TimeOfDay{TimeOfDay: "night", Source: "fallback"}
}

// naive strips the location from a local instant so it compares against the
// provider's timezone-less sun times as plain wall-clock values.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// Holiday reports which holiday window, if any, the current date falls in.
func (e *Engine) Holiday() models.Holiday {
	now := e.now()
	month, day := now.Month(), now.Day()

	var label string
	switch {
	case month == time.December && day <= 26:
		label = "christmas"
	case (month == time.December && day >= 27) || (month == time.January && day <= 5):
		label = "new year"
	case month == time.October && day >= 25:
		label = "halloween"
	case (month == time.March && day >= 20) || (month == time.April && day <= 20):
		label = "easter"
	default:
		return models.Holiday{}
	}

	return models.Holiday{Holiday: &label}
}

// PhotoQuery composes the search phrase for the background photo. Festive
// windows (a narrower set than Holiday) override everything; otherwise
// night/dawn/dusk dominate the phrasing, precipitation beats cloud cover,
// and a clear day falls back to the bare season name.
func (e *Engine) PhotoQuery(cloudcover, rain, snowfall float64, sunriseISO, sunsetISO string, festive bool) models.PhotoQuery {
	if festive {
		if q, ok := e.festiveQuery(); ok {
			return models.PhotoQuery{Query: q}
		}
	}

	tod := e.TimeOfDay(sunriseISO, sunsetISO)
	season := seasonOf(e.now())

	hasSnow := snowfall > 0.5
	hasRain := rain > 0.5

	var query string
	switch tod.TimeOfDay {
	case "night":
		switch {
		case hasSnow:
			query = season + " snowy night"
		case hasRain:
			query = season + " rainy night"
		default:
			query = season + " night"
		}
	case "dawn":
		query = season + " dawn"
	case "dusk":
		query = season + " dusk"
	default:
		switch {
		case hasSnow:
			query = season + " snow"
		case hasRain:
			query = season + " rain"
		case cloudcover > 70 && season != "winter":
			query = season + " cloudy"
		default:
			query = season
		}
	}

	return models.PhotoQuery{Query: query}
}

func (e *Engine) festiveQuery() (string, bool) {
	now := e.now()
	month, day := now.Month(), now.Day()

	switch {
	case month == time.December && day >= 20 && day <= 26:
		return "christmas", true
	case (month == time.December && day >= 27) || (month == time.January && day <= 5):
		return "new year", true
	case month == time.October && day >= 25:
		return "halloween", true
	}
	return "", false
}

// CurrentTime formats the clock according to the stored unit settings.
func (e *Engine) CurrentTime(doc settings.Settings) models.FormattedTime {
	now := e.now()

	var timeStr string
	if doc.Units.TimeFormat == "12h" {
		timeStr = now.Format("3:04 PM")
	} else {
		timeStr = now.Format("15:04")
	}

	var dateStr string
	switch doc.Units.DateFormat {
	case "mdy":
		dateStr = now.Format("Jan 02, 2006")
	case "dmy":
		dateStr = now.Format("02 Jan 2006")
	case "ymd":
		dateStr = now.Format("2006 Jan 02")
	default:
		dateStr = now.Format("Jan 02, 2006")
	}

	return models.FormattedTime{
		Time:      timeStr,
		Date:      dateStr,
		DayOfWeek: strings.ToUpper(now.Format("Monday")),
		Timestamp: now.UnixMilli(),
	}
}

// PrecipitationDisplay picks the icon/label/value triple for the current
// precipitation, preferring snow over rain.
func (e *Engine) PrecipitationDisplay(weather models.WeatherData) models.PrecipitationDisplay {
	switch {
	case weather.Snowfall > 0:
		return models.PrecipitationDisplay{
			Icon:  "snowflake.svg",
			Label: "Snow",
			Value: fmt.Sprintf("%.1f cm", weather.Snowfall),
		}
	case weather.Rain > 0:
		return models.PrecipitationDisplay{
			Icon:  "droplets.svg",
			Label: "Rain",
			Value: fmt.Sprintf("%.1f mm", weather.Rain),
		}
	default:
		return models.PrecipitationDisplay{
			Icon:  "umbrella.svg",
			Label: "Precip",
			Value: "Clear",
		}
	}
}

// IsCacheValid reports whether a photo fetched at the given millisecond
// timestamp is still fresh under the configured refresh interval.
func (e *Engine) IsCacheValid(cacheTimestamp int64, doc settings.Settings) bool {
	now := e.now().UnixMilli()
	if cacheTimestamp > now {
		return true
	}
	intervalMillis := int64(doc.Photos.RefreshInterval) * 60 * 1000
	return now-cacheTimestamp < intervalMillis
}

// FormatTimeRemaining renders a millisecond countdown as "2h 05m",
// "3m 07s", or "42s".
func (e *Engine) FormatTimeRemaining(milliseconds int64) string {
	if milliseconds <= 0 {
		return "0s"
	}

	totalSeconds := milliseconds / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
