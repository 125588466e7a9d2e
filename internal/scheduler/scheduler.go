package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"idleview/internal/commands"
	"idleview/internal/models"
	"idleview/internal/settings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically refreshes the background photo: geolocate, fetch
// weather, derive a search query, fetch a matching photo, and publish it.
// The cron entry follows photos.refresh_interval; when a settings write
// changes the interval, the entry is rebuilt after the next run.
type Scheduler struct {
	cmds   *commands.Commands
	store  *settings.Store
	cron   *cron.Cron
	logger *zap.Logger
	width  int
	height int

	mu       sync.Mutex
	entryID  cron.EntryID
	interval time.Duration
	running  bool
	lastRun  time.Time
}

func NewScheduler(cmds *commands.Commands, store *settings.Store, width, height int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cmds:   cmds,
		store:  store,
		cron:   cron.New(),
		logger: logger,
		width:  width,
		height: height,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	interval := s.configuredInterval()
	if err := s.schedule(interval); err != nil {
		s.logger.Error("Failed to schedule photo refresh", zap.Error(err))
	}
	s.cron.Start()

	s.logger.Info("Photo refresh scheduler started",
		zap.Duration("interval", interval))

	// Run immediately on start
	go s.run()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping photo refresh scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

// ForceRefresh triggers a refresh outside the schedule.
func (s *Scheduler) ForceRefresh() {
	s.logger.Info("Manually triggering photo refresh")
	go s.run()
}

func (s *Scheduler) run() {
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	s.refresh()

	// Pick up a changed refresh interval for the next run.
	if interval := s.configuredInterval(); interval != s.currentInterval() {
		s.logger.Info("Refresh interval changed, rescheduling",
			zap.Duration("interval", interval))
		if err := s.schedule(interval); err != nil {
			s.logger.Error("Failed to reschedule photo refresh", zap.Error(err))
		}
	}
}

func (s *Scheduler) refresh() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	location, err := s.cmds.GetLocation(ctx)
	if err != nil {
		s.logger.Error("Photo refresh: geolocation failed", zap.Error(err))
		return
	}

	weather, err := s.cmds.GetWeather(ctx, location.Latitude, location.Longitude)
	if err != nil {
		s.logger.Error("Photo refresh: weather fetch failed",
			zap.Float64("latitude", location.Latitude),
			zap.Float64("longitude", location.Longitude),
			zap.Error(err))
		return
	}

	query := s.cmds.BuildPhotoQuery(
		weather.CloudCover, weather.Rain, weather.Snowfall,
		weather.Sunrise, weather.Sunset, true)

	photo, err := s.cmds.GetPhoto(ctx, s.width, s.height, query.Query)
	if err != nil {
		s.logger.Error("Photo refresh: photo fetch failed",
			zap.String("query", query.Query),
			zap.Error(err))
		return
	}

	s.cmds.SetCurrentPhoto(models.CurrentPhoto{
		URL:       photo.URL,
		Author:    photo.Author,
		AuthorURL: photo.AuthorURL,
	}, query.Query)

	if err := s.cmds.TriggerDownload(ctx, photo.DownloadLocation); err != nil {
		s.logger.Warn("Photo refresh: download trigger failed", zap.Error(err))
	}

	s.logger.Info("Photo refreshed",
		zap.String("query", query.Query),
		zap.String("author", photo.Author),
		zap.Duration("duration", time.Since(start)))
}

func (s *Scheduler) schedule(interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.run)
	if err != nil {
		return fmt.Errorf("adding cron entry: %w", err)
	}

	s.entryID = entryID
	s.interval = interval
	return nil
}

func (s *Scheduler) configuredInterval() time.Duration {
	return time.Duration(s.store.Get().Photos.RefreshInterval) * time.Minute
}

func (s *Scheduler) currentInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"running":  s.running,
		"interval": s.interval.String(),
		"last_run": s.lastRun,
	}
}
