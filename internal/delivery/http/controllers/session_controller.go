package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// CreateSessionRequest is the request body for POST /conferences/{websafeConferenceKey}/sessions.
// start_time is 24-hour military notation, e.g. 1705 for 17:05.
type CreateSessionRequest struct {
	Name              string   `json:"name"`
	Highlights        []string `json:"highlights"`
	WebsafeSpeakerKey string   `json:"websafe_speaker_key"`
	Duration          int      `json:"duration"`
	TypeOfSession     string   `json:"type_of_session"`
	Date              string   `json:"date"`
	StartTime         int      `json:"start_time"`
}

// Validate implements Validator.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.WebsafeSpeakerKey == "" {
		errs = append(errs, "websafe_speaker_key is required")
	}
	if c.Duration < 0 {
		errs = append(errs, "duration must be non-negative")
	}
	if c.StartTime < 0 || c.StartTime > 2359 {
		errs = append(errs, "start_time must be between 0 and 2359")
	}
	return errs
}

// SessionsByStartTimeRequest is the request body for POST /sessions/query/start-time.
type SessionsByStartTimeRequest struct {
	StartTime int `json:"start_time"`
}

// Validate implements Validator.
func (s SessionsByStartTimeRequest) Validate() []string {
	if s.StartTime < 0 || s.StartTime > 2359 {
		return []string{"start_time must be between 0 and 2359"}
	}
	return nil
}

// SessionsByStartTimeDurationRequest is the request body for POST /sessions/query/start-time-duration.
type SessionsByStartTimeDurationRequest struct {
	StartTime int `json:"start_time"`
	Duration  int `json:"duration"`
}

// Validate implements Validator.
func (s SessionsByStartTimeDurationRequest) Validate() []string {
	var errs []string
	if s.StartTime < 0 || s.StartTime > 2359 {
		errs = append(errs, "start_time must be between 0 and 2359")
	}
	if s.Duration < 0 {
		errs = append(errs, "duration must be non-negative")
	}
	return errs
}

// SessionsByStartTimeDurationHighlightsRequest is the request body for
// POST /sessions/query/min-start-time-duration-highlights.
type SessionsByStartTimeDurationHighlightsRequest struct {
	StartTime  int    `json:"start_time"`
	Duration   int    `json:"duration"`
	Highlights string `json:"highlights"`
}

// Validate implements Validator.
func (s SessionsByStartTimeDurationHighlightsRequest) Validate() []string {
	var errs []string
	if s.StartTime < 0 || s.StartTime > 2359 {
		errs = append(errs, "start_time must be between 0 and 2359")
	}
	if s.Duration < 0 {
		errs = append(errs, "duration must be non-negative")
	}
	if s.Highlights == "" {
		errs = append(errs, "highlights is required")
	}
	return errs
}

// SessionsByTypeAndStartTimeRequest is the request body for POST /sessions/query/type-start-time.
type SessionsByTypeAndStartTimeRequest struct {
	TypeOfSession string `json:"type_of_session"`
	StartTime     int    `json:"start_time"`
}

// Validate implements Validator.
func (s SessionsByTypeAndStartTimeRequest) Validate() []string {
	var errs []string
	if s.TypeOfSession == "" {
		errs = append(errs, "type_of_session is required")
	}
	if s.StartTime < 0 || s.StartTime > 2359 {
		errs = append(errs, "start_time must be between 0 and 2359")
	}
	return errs
}

// SessionSuccessResponse is the success response envelope for endpoints
// returning a single session.
type SessionSuccessResponse struct {
	Data  *domain.SessionForm `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SessionListSuccessResponse is the success response envelope for endpoints
// returning a list of sessions.
type SessionListSuccessResponse struct {
	Data  []*domain.SessionForm `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// WishlistResponse is the data payload for wishlist endpoints.
type WishlistResponse struct {
	Added bool `json:"added"`
}

// WishlistSuccessResponse is the success response envelope for wishlist endpoints.
type WishlistSuccessResponse struct {
	Data  WishlistResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FeaturedSpeakerResponse is the data payload for GET /speakers/featured.
type FeaturedSpeakerResponse struct {
	FeaturedSpeaker string `json:"featured_speaker"`
}

// FeaturedSpeakerSuccessResponse is the success response envelope for GET /speakers/featured (200).
type FeaturedSpeakerSuccessResponse struct {
	Data  FeaturedSpeakerResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Creates a session under the conference. Only the conference creator may add sessions. A confirmation email is sent and the featured speaker check runs asynchronously.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Param body body CreateSessionRequest true "Session data"
// @Success 201 {object} controllers.SessionSuccessResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (no token or not the conference creator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (conference or speaker)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeConferenceKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	form, err := c.Service.CreateSession(r.Context(), identity, key, &domain.CreateSessionInput{
		Name:              req.Name,
		Highlights:        req.Highlights,
		WebsafeSpeakerKey: req.WebsafeSpeakerKey,
		Duration:          req.Duration,
		TypeOfSession:     req.TypeOfSession,
		Date:              req.Date,
		StartTime:         req.StartTime,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, form)
}

// GetConferenceSessions godoc
// @Summary List sessions of a conference
// @Description Returns all sessions belonging to the conference.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/sessions [get]
func (c *SessionController) GetConferenceSessions(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeConferenceKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	forms, err := c.Service.GetConferenceSessions(r.Context(), key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// GetConferenceSessionsByType godoc
// @Summary List sessions of a conference by type
// @Description Returns the conference's sessions matching the given type.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Param typeOfSession path string true "Session type, e.g. workshop or lecture"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/sessions/type/{typeOfSession} [get]
func (c *SessionController) GetConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeConferenceKey")
	typeOfSession := r.PathValue("typeOfSession")
	if key == "" || typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey or typeOfSession")
		return
	}
	forms, err := c.Service.GetConferenceSessionsByType(r.Context(), key, typeOfSession)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// GetSessionsBySpeaker godoc
// @Summary List sessions by speaker
// @Description Returns all sessions given by the speaker across all conferences.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param websafeSpeakerKey path string true "Websafe speaker key"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{websafeSpeakerKey}/sessions [get]
func (c *SessionController) GetSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeSpeakerKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeSpeakerKey")
		return
	}
	forms, err := c.Service.GetSessionsBySpeaker(r.Context(), key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// GetSessionsByStartTime godoc
// @Summary List sessions by exact start time
// @Description Returns sessions starting exactly at the given time across all conferences.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SessionsByStartTimeRequest true "Start time in military notation"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/query/start-time [post]
func (c *SessionController) GetSessionsByStartTime(w http.ResponseWriter, r *http.Request) {
	var req SessionsByStartTimeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	forms, err := c.Service.GetSessionsByStartTime(r.Context(), req.StartTime)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// GetSessionsByStartTimeAndDuration godoc
// @Summary List sessions by minimum start time and duration
// @Description Returns sessions starting at or after the given time with the exact duration.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SessionsByStartTimeDurationRequest true "Minimum start time and duration"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/query/start-time-duration [post]
func (c *SessionController) GetSessionsByStartTimeAndDuration(w http.ResponseWriter, r *http.Request) {
	var req SessionsByStartTimeDurationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	forms, err := c.Service.GetSessionsByStartTimeAndDuration(r.Context(), req.StartTime, req.Duration)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// GetSessionsByMinStartTimeDurationHighlights godoc
// @Summary List sessions by minimum start time, duration, and highlight
// @Description Returns sessions starting at or after the given time with the exact duration that carry the given highlight.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SessionsByStartTimeDurationHighlightsRequest true "Minimum start time, duration, and highlight"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/query/min-start-time-duration-highlights [post]
func (c *SessionController) GetSessionsByMinStartTimeDurationHighlights(w http.ResponseWriter, r *http.Request) {
	var req SessionsByStartTimeDurationHighlightsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	forms, err := c.Service.GetSessionsByMinStartTimeDurationHighlights(r.Context(), req.StartTime, req.Duration, req.Highlights)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// QuerySessionsByTypeAndStartTime godoc
// @Summary List sessions excluding a type before a start time
// @Description Returns sessions whose type differs from the given type and which start strictly before the given time.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SessionsByTypeAndStartTimeRequest true "Excluded type and upper start time bound"
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/query/type-start-time [post]
func (c *SessionController) QuerySessionsByTypeAndStartTime(w http.ResponseWriter, r *http.Request) {
	var req SessionsByTypeAndStartTimeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	forms, err := c.Service.QuerySessionsByTypeAndStartTime(r.Context(), req.TypeOfSession, req.StartTime)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// AddSessionToWishlist godoc
// @Summary Add a session to the caller's wishlist
// @Description Adds the session to the authenticated user's wishlist. A duplicate entry fails with 409.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param websafeSessionKey path string true "Websafe session key"
// @Success 200 {object} controllers.WishlistSuccessResponse "data.added is true"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already in the wishlist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/{websafeSessionKey} [post]
func (c *SessionController) AddSessionToWishlist(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeSessionKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeSessionKey")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	added, err := c.Service.AddSessionToWishlist(r.Context(), identity, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WishlistResponse{Added: added})
}

// DeleteSessionInWishlist godoc
// @Summary Remove a session from the caller's wishlist
// @Description Removes the session from the authenticated user's wishlist. If the session is not on the wishlist, data.added is false.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param websafeSessionKey path string true "Websafe session key"
// @Success 200 {object} controllers.WishlistSuccessResponse "data.added reports whether an entry was removed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/{websafeSessionKey} [delete]
func (c *SessionController) DeleteSessionInWishlist(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeSessionKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeSessionKey")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	removed, err := c.Service.DeleteSessionInWishlist(r.Context(), identity, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WishlistResponse{Added: removed})
}

// GetSessionsInWishlist godoc
// @Summary List the caller's wishlisted sessions
// @Description Returns the sessions on the authenticated user's wishlist.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionListSuccessResponse "data is an array of sessions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist [get]
func (c *SessionController) GetSessionsInWishlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	forms, err := c.Service.GetSessionsInWishlist(r.Context(), identity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeSessions(w, forms)
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker announcement
// @Description Returns the published featured speaker announcement, or a placeholder when none is set.
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.FeaturedSpeakerSuccessResponse "data contains the announcement text"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/featured [get]
func (c *SessionController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	featured, err := c.Service.GetFeaturedSpeaker(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FeaturedSpeakerResponse{FeaturedSpeaker: featured})
}

func (c *SessionController) writeSessions(w http.ResponseWriter, forms []*domain.SessionForm) {
	if forms == nil {
		forms = []*domain.SessionForm{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms)
}
