package services

import (
	"sync"
	"time"
)

// sunTimeLayout is the ISO-like local wall-clock format Open-Meteo returns
// for daily sunrise/sunset (no timezone).
const sunTimeLayout = "2006-01-02T15:04"

// SunTimesCache memoizes the parse of the most recent sunrise/sunset string
// pair. The display polls with identical inputs all day, so a single entry
// keyed by the exact raw pair is enough; a different pair unconditionally
// replaces it. Purely an optimization: a racing reparse is harmless.
type SunTimesCache struct {
	mu         sync.Mutex
	sunriseRaw string
	sunsetRaw  string
	sunrise    time.Time
	sunset     time.Time
	valid      bool
}

func NewSunTimesCache() *SunTimesCache {
	return &SunTimesCache{}
}

// Resolve returns the parsed sunrise/sunset pair for the given raw strings,
// reusing the cached parse when the raw pair matches byte-for-byte. If
// either string fails to parse, ok is false and the cache is untouched.
func (c *SunTimesCache) Resolve(sunriseRaw, sunsetRaw string) (sunrise, sunset time.Time, ok bool) {
	c.mu.Lock()
	if c.valid && c.sunriseRaw == sunriseRaw && c.sunsetRaw == sunsetRaw {
		sunrise, sunset = c.sunrise, c.sunset
		c.mu.Unlock()
		return sunrise, sunset, true
	}
	c.mu.Unlock()

	sunrise, err := time.Parse(sunTimeLayout, sunriseRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	sunset, err = time.Parse(sunTimeLayout, sunsetRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	c.mu.Lock()
	c.sunriseRaw = sunriseRaw
	c.sunsetRaw = sunsetRaw
	c.sunrise = sunrise
	c.sunset = sunset
	c.valid = true
	c.mu.Unlock()

	return sunrise, sunset, true
}
