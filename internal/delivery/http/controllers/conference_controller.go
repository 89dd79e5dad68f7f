package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// CreateConferenceRequest is the request body for POST /conferences. Only name
// is required; unset city and topics receive creation defaults.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must be non-negative")
	}
	return errs
}

// QueryConferencesRequest is the request body for POST /conferences/query.
// Filters may be empty, which returns all conferences.
type QueryConferencesRequest struct {
	Filters []query.Filter `json:"filters"`
}

// Validate implements Validator.
func (q QueryConferencesRequest) Validate() []string {
	var errs []string
	for _, f := range q.Filters {
		if f.Field == "" {
			errs = append(errs, "filter field is required")
		}
		if f.Operator == "" {
			errs = append(errs, "filter operator is required")
		}
	}
	return errs
}

// ConferenceSuccessResponse is the success response envelope for endpoints
// returning a single conference.
type ConferenceSuccessResponse struct {
	Data  *domain.ConferenceForm `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ConferenceListSuccessResponse is the success response envelope for endpoints
// returning a list of conferences.
type ConferenceListSuccessResponse struct {
	Data  []*domain.ConferenceForm `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// RegistrationResponse is the data payload for registration endpoints.
type RegistrationResponse struct {
	Registered bool `json:"registered"`
}

// RegistrationSuccessResponse is the success response envelope for registration endpoints.
type RegistrationSuccessResponse struct {
	Data  RegistrationResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// AnnouncementResponse is the data payload for GET /announcement.
type AnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

// AnnouncementSuccessResponse is the success response envelope for GET /announcement (200).
type AnnouncementSuccessResponse struct {
	Data  AnnouncementResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference owned by the authenticated user. Unset city and topics receive defaults; seats available starts at max_attendees. A confirmation email is sent asynchronously.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateConferenceRequest true "Conference data"
// @Success 201 {object} controllers.ConferenceSuccessResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	form, err := c.Service.CreateConference(r.Context(), identity, &domain.CreateConferenceInput{
		Name:         req.Name,
		Description:  req.Description,
		Topics:       req.Topics,
		City:         req.City,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, form)
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Returns conferences matching the submitted filters, ordered by name. Filter fields: CITY, TOPIC, MONTH, MAX_ATTENDEES, NAME. Operators: EQ, GT, GTEQ, LT, LTEQ, NE. At most one field may carry an inequality operator.
// @Tags conferences
// @Accept json
// @Produce json
// @Param body body QueryConferencesRequest true "Query filters (may be empty)"
// @Success 200 {object} controllers.ConferenceListSuccessResponse "data is an array of conferences"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown field or operator, or multiple inequality fields)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	forms, err := c.Service.QueryConferences(r.Context(), req.Filters)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if forms == nil {
		forms = []*domain.ConferenceForm{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms)
}

// GetConferencesCreated godoc
// @Summary List conferences created by the caller
// @Description Returns conferences owned by the authenticated user, newest first.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse "data is an array of conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) GetConferencesCreated(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	forms, err := c.Service.GetConferencesCreated(r.Context(), identity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if forms == nil {
		forms = []*domain.ConferenceForm{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms)
}

// GetConferencesToAttend godoc
// @Summary List conferences the caller registered for
// @Description Returns the conferences on the authenticated user's attendance list.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse "data is an array of conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/attending [get]
func (c *ConferenceController) GetConferencesToAttend(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	forms, err := c.Service.GetConferencesToAttend(r.Context(), identity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if forms == nil {
		forms = []*domain.ConferenceForm{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms)
}

// GetConference godoc
// @Summary Get a conference by websafe key
// @Description Returns the conference identified by its websafe key.
// @Tags conferences
// @Produce json
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} controllers.ConferenceSuccessResponse "data contains the conference"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeConferenceKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	form, err := c.Service.GetConference(r.Context(), key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, form)
}

// RegisterForConference godoc
// @Summary Register for a conference
// @Description Registers the authenticated user for the conference and decrements the seat count. Duplicate registrations and sold-out conferences fail with 409.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data.registered is true"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or no seats available)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/registration [post]
func (c *ConferenceController) RegisterForConference(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeConferenceKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	registered, err := c.Service.RegisterForConference(r.Context(), identity, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResponse{Registered: registered})
}

// UnregisterFromConference godoc
// @Summary Unregister from a conference
// @Description Removes the authenticated user's registration and returns the seat. If no registration exists, data.registered is false and the seat count is unchanged.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param websafeConferenceKey path string true "Websafe conference key"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data.registered reports whether a registration was removed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeConferenceKey}/registration [delete]
func (c *ConferenceController) UnregisterFromConference(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("websafeConferenceKey")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeConferenceKey")
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	registered, err := c.Service.UnregisterFromConference(r.Context(), identity, key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResponse{Registered: registered})
}

// GetAnnouncement godoc
// @Summary Get the current announcement
// @Description Returns the published nearly-sold-out announcement, or an empty string when none is set.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.AnnouncementSuccessResponse "data contains the announcement text"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /announcement [get]
func (c *ConferenceController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Service.GetAnnouncement(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Announcement: announcement})
}
