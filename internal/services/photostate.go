package services

import (
	"sync"
	"time"

	"idleview/internal/models"
)

// PhotoState holds the background photo the display is currently showing,
// shared between the refresh scheduler, the GUI commands, and the HTTP
// layer.
type PhotoState struct {
	mu        sync.RWMutex
	photo     *models.CurrentPhoto
	query     string
	fetchedAt time.Time
}

func NewPhotoState() *PhotoState {
	return &PhotoState{}
}

// Current returns the photo on display, or nil when none has been set yet.
func (p *PhotoState) Current() *models.CurrentPhoto {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.photo == nil {
		return nil
	}
	photo := *p.photo
	return &photo
}

// Set replaces the current photo and records the query that produced it.
func (p *PhotoState) Set(photo models.CurrentPhoto, query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.photo = &photo
	p.query = query
	p.fetchedAt = time.Now()
}

// LastQuery returns the search query behind the current photo and when the
// photo was fetched; fetchedAt is zero when no photo has been set.
func (p *PhotoState) LastQuery() (query string, fetchedAt time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.query, p.fetchedAt
}
