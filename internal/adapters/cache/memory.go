// Package cache implements the announcement cache slots on top of an
// in-process cache.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"conferencecentral/internal/domain"
)

// The two well-known slot keys.
const (
	announcementKey    = "announcement"
	featuredSpeakerKey = "featured_speaker"
)

const cleanupInterval = 10 * time.Minute

// Memory is an in-process AnnouncementCache. The announcement slot carries
// announcementTTL (zero means no expiration; the cron job refreshes or deletes
// it). The featured-speaker slot never expires and persists until overwritten.
type Memory struct {
	cache           *gocache.Cache
	announcementTTL time.Duration
}

// NewMemory creates the cache. announcementTTL <= 0 disables expiration.
func NewMemory(announcementTTL time.Duration) *Memory {
	if announcementTTL <= 0 {
		announcementTTL = gocache.NoExpiration
	}
	return &Memory{
		cache:           gocache.New(gocache.NoExpiration, cleanupInterval),
		announcementTTL: announcementTTL,
	}
}

var _ domain.AnnouncementCache = (*Memory)(nil)

func (m *Memory) SetAnnouncement(text string) {
	m.cache.Set(announcementKey, text, m.announcementTTL)
}

func (m *Memory) GetAnnouncement() (string, bool) {
	return m.get(announcementKey)
}

func (m *Memory) DeleteAnnouncement() {
	m.cache.Delete(announcementKey)
}

func (m *Memory) SetFeaturedSpeaker(text string) {
	m.cache.Set(featuredSpeakerKey, text, gocache.NoExpiration)
}

func (m *Memory) GetFeaturedSpeaker() (string, bool) {
	return m.get(featuredSpeakerKey)
}

func (m *Memory) get(key string) (string, bool) {
	value, found := m.cache.Get(key)
	if !found {
		return "", false
	}
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	return text, true
}
