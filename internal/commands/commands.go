// Package commands is the operation surface the native shell invokes. Each
// command wraps a settings-store or derivation-engine call and returns a
// value plus a plain error the shell can show verbatim; no business logic
// lives here.
package commands

import (
	"context"
	"fmt"
	"time"

	"idleview/internal/models"
	"idleview/internal/services"
	"idleview/internal/settings"
	"idleview/pkg/client"

	"go.uber.org/zap"
)

type Commands struct {
	store     *settings.Store
	engine    *services.Engine
	photos    *services.PhotoState
	openMeteo *client.OpenMeteoClient
	unsplash  *client.UnsplashClient
	ipAPI     *client.IPAPIClient
	accessKey string
	logger    *zap.Logger
}

func New(
	store *settings.Store,
	engine *services.Engine,
	photos *services.PhotoState,
	openMeteo *client.OpenMeteoClient,
	unsplash *client.UnsplashClient,
	ipAPI *client.IPAPIClient,
	accessKey string,
	logger *zap.Logger,
) *Commands {
	return &Commands{
		store:     store,
		engine:    engine,
		photos:    photos,
		openMeteo: openMeteo,
		unsplash:  unsplash,
		ipAPI:     ipAPI,
		accessKey: accessKey,
		logger:    logger,
	}
}

func (c *Commands) GetSettings() settings.Settings {
	return c.store.Get()
}

func (c *Commands) SaveSettings(doc settings.Settings) error {
	return c.store.Replace(doc)
}

func (c *Commands) PatchSettings(patch []byte) (settings.Settings, error) {
	return c.store.MergePatch(patch)
}

func (c *Commands) ResetSettings() (settings.Settings, error) {
	return c.store.Reset()
}

func (c *Commands) GetLocation(ctx context.Context) (*models.Location, error) {
	return c.ipAPI.Locate(ctx)
}

func (c *Commands) GetWeather(ctx context.Context, latitude, longitude float64) (*models.WeatherData, error) {
	return c.openMeteo.Weather(ctx, latitude, longitude, c.store.Get())
}

func (c *Commands) GetPhoto(ctx context.Context, width, height int, query string) (*models.UnsplashPhoto, error) {
	quality := string(c.store.Get().Photos.PhotoQuality)
	return c.unsplash.RandomPhoto(ctx, width, height, query, quality)
}

func (c *Commands) TriggerDownload(ctx context.Context, downloadURL string) error {
	return c.unsplash.TriggerDownload(ctx, downloadURL)
}

func (c *Commands) GetSeason() models.Season {
	return c.engine.Season()
}

func (c *Commands) GetHoliday() models.Holiday {
	return c.engine.Holiday()
}

func (c *Commands) GetTimeOfDay(sunriseISO, sunsetISO string) models.TimeOfDay {
	return c.engine.TimeOfDay(sunriseISO, sunsetISO)
}

func (c *Commands) BuildPhotoQuery(cloudcover, rain, snowfall float64, sunriseISO, sunsetISO string, festive bool) models.PhotoQuery {
	return c.engine.PhotoQuery(cloudcover, rain, snowfall, sunriseISO, sunsetISO, festive)
}

func (c *Commands) GetCurrentTime() models.FormattedTime {
	return c.engine.CurrentTime(c.store.Get())
}

func (c *Commands) GetPrecipitationDisplay(weather models.WeatherData) models.PrecipitationDisplay {
	return c.engine.PrecipitationDisplay(weather)
}

func (c *Commands) IsCacheValid(cacheTimestamp int64) bool {
	return c.engine.IsCacheValid(cacheTimestamp, c.store.Get())
}

func (c *Commands) FormatTimeRemaining(milliseconds int64) string {
	return c.engine.FormatTimeRemaining(milliseconds)
}

func (c *Commands) GetCPUTemp() models.CPUTemp {
	return services.ReadCPUTemp(c.store.Get())
}

func (c *Commands) CurrentPhoto() *models.CurrentPhoto {
	return c.photos.Current()
}

func (c *Commands) SetCurrentPhoto(photo models.CurrentPhoto, query string) {
	c.photos.Set(photo, query)
}

// DebugRequest carries the optional values the shell's debug overlay has on
// hand; nil fields render as "n/a" or "unknown".
type DebugRequest struct {
	CacheTimestamp *int64
	Query          *string
	SunriseISO     string
	SunsetISO      string
	Temperature    *float64
	Rain           *float64
	Snowfall       *float64
	CloudCover     *float64
}

func (c *Commands) GetDebugInfo(req DebugRequest) models.DebugInfo {
	doc := c.store.Get()
	tod := c.engine.TimeOfDay(req.SunriseISO, req.SunsetISO)
	season := c.engine.Season()

	photoAge := "unknown"
	if req.CacheTimestamp != nil {
		photoAge = formatAge(time.Now().UnixMilli() - *req.CacheTimestamp)
	}

	query := "n/a"
	if req.Query != nil {
		query = *req.Query
	}

	keyStatus, keySource := "Missing or invalid", "None"
	if len(c.accessKey) > 10 && c.accessKey != "YOUR_UNSPLASH_ACCESS_KEY" {
		keyStatus, keySource = "Available", "Environment"
	}

	temperature := "n/a"
	if req.Temperature != nil {
		if doc.Units.TemperatureUnit == "fahrenheit" {
			temperature = fmt.Sprintf("%.1f°F", *req.Temperature)
		} else {
			temperature = fmt.Sprintf("%.1f°C", *req.Temperature)
		}
	}

	rain := "n/a"
	if req.Rain != nil {
		rain = fmt.Sprintf("%.1fmm", *req.Rain)
	}

	snowfall := "n/a"
	if req.Snowfall != nil {
		snowfall = fmt.Sprintf("%.1fcm", *req.Snowfall)
	}

	cloudcover := "n/a"
	if req.CloudCover != nil {
		cloudcover = fmt.Sprintf("%d%%", int(*req.CloudCover))
	}

	return models.DebugInfo{
		PhotoAge:     photoAge,
		Query:        query,
		TimeSource:   tod.Source,
		TimeOfDay:    tod.TimeOfDay,
		APIKeyStatus: keyStatus,
		APIKeySource: keySource,
		Temperature:  temperature,
		Rain:         rain,
		Snowfall:     snowfall,
		CloudCover:   cloudcover,
		Season:       season.Season,
	}
}

func formatAge(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	seconds := millis / 1000

	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
