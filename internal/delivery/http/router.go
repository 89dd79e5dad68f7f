package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// RouterConfig carries the controllers and cross-cutting pieces the router
// mounts. AuthController is optional; it is nil in production.
type RouterConfig struct {
	Logger     *slog.Logger
	Verifier   domain.TokenVerifier
	Profile    *controllers.ProfileController
	Conference *controllers.ConferenceController
	Session    *controllers.SessionController
	Speaker    *controllers.SpeakerController
	Internal   *controllers.InternalController
	Auth       *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	// Profile
	mux.HandleFunc("GET /profile", auth(cfg.Profile.GetProfile))
	mux.HandleFunc("POST /profile", auth(cfg.Profile.SaveProfile))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(cfg.Conference.CreateConference))
	mux.HandleFunc("POST /conferences/query", cfg.Conference.QueryConferences)
	mux.HandleFunc("GET /conferences/created", auth(cfg.Conference.GetConferencesCreated))
	mux.HandleFunc("GET /conferences/attending", auth(cfg.Conference.GetConferencesToAttend))
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}", cfg.Conference.GetConference)
	mux.HandleFunc("POST /conferences/{websafeConferenceKey}/registration", auth(cfg.Conference.RegisterForConference))
	mux.HandleFunc("DELETE /conferences/{websafeConferenceKey}/registration", auth(cfg.Conference.UnregisterFromConference))
	mux.HandleFunc("GET /announcement", cfg.Conference.GetAnnouncement)

	// Sessions
	mux.HandleFunc("POST /conferences/{websafeConferenceKey}/sessions", auth(cfg.Session.CreateSession))
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}/sessions", auth(cfg.Session.GetConferenceSessions))
	mux.HandleFunc("GET /conferences/{websafeConferenceKey}/sessions/type/{typeOfSession}", auth(cfg.Session.GetConferenceSessionsByType))
	mux.HandleFunc("GET /speakers/{websafeSpeakerKey}/sessions", auth(cfg.Session.GetSessionsBySpeaker))
	mux.HandleFunc("POST /sessions/query/start-time", auth(cfg.Session.GetSessionsByStartTime))
	mux.HandleFunc("POST /sessions/query/start-time-duration", auth(cfg.Session.GetSessionsByStartTimeAndDuration))
	mux.HandleFunc("POST /sessions/query/min-start-time-duration-highlights", auth(cfg.Session.GetSessionsByMinStartTimeDurationHighlights))
	mux.HandleFunc("POST /sessions/query/type-start-time", auth(cfg.Session.QuerySessionsByTypeAndStartTime))

	// Wishlist
	mux.HandleFunc("POST /wishlist/{websafeSessionKey}", auth(cfg.Session.AddSessionToWishlist))
	mux.HandleFunc("DELETE /wishlist/{websafeSessionKey}", auth(cfg.Session.DeleteSessionInWishlist))
	mux.HandleFunc("GET /wishlist", auth(cfg.Session.GetSessionsInWishlist))

	// Speakers
	mux.HandleFunc("POST /speakers", auth(cfg.Speaker.CreateSpeaker))
	mux.HandleFunc("POST /speakers/query", cfg.Speaker.QuerySpeakers)
	mux.HandleFunc("GET /speakers/most-sessions", auth(cfg.Speaker.GetSpeakerWithMostSessions))
	mux.HandleFunc("GET /speakers/featured", cfg.Session.GetFeaturedSpeaker)

	// Scheduler
	mux.HandleFunc("POST /internal/cron/announcement", cfg.Internal.RefreshAnnouncement)

	// Auth (non-production only)
	if cfg.Auth != nil {
		mux.HandleFunc("POST /auth/dev-token", cfg.Auth.IssueDevToken)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
