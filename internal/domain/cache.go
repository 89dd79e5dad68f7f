package domain

// AnnouncementCache owns the two well-known cache slots: the nearly-sold-out
// announcement and the featured-speaker message. The announcement slot is
// refreshed or deleted by the cron job and may carry a TTL; the
// featured-speaker slot persists until overwritten.
type AnnouncementCache interface {
	SetAnnouncement(text string)
	GetAnnouncement() (string, bool)
	DeleteAnnouncement()
	SetFeaturedSpeaker(text string)
	GetFeaturedSpeaker() (string, bool)
}
