package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// CreateSpeakerRequest is the request body for POST /speakers.
type CreateSpeakerRequest struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Interests    []string `json:"interests"`
}

// Validate implements Validator.
func (c CreateSpeakerRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// QuerySpeakersRequest is the request body for POST /speakers/query.
// Filters may be empty, which returns all speakers.
type QuerySpeakersRequest struct {
	Filters []query.Filter `json:"filters"`
}

// Validate implements Validator.
func (q QuerySpeakersRequest) Validate() []string {
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

// SpeakerSuccessResponse is the success response envelope for endpoints
// returning a single speaker.
type SpeakerSuccessResponse struct {
	Data  *domain.SpeakerForm `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SpeakerListSuccessResponse is the success response envelope for endpoints
// returning a list of speakers.
type SpeakerListSuccessResponse struct {
	Data  []*domain.SpeakerForm `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSpeaker godoc
// @Summary Create a speaker
// @Description Creates a speaker. Speakers exist independently of conferences and sessions. A confirmation email is sent asynchronously.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var req CreateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	form, err := c.Service.CreateSpeaker(r.Context(), identity, &domain.CreateSpeakerInput{
		Name:         req.Name,
		Organization: req.Organization,
		Interests:    req.Interests,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, form)
}

// QuerySpeakers godoc
// @Summary Query speakers
// @Description Returns speakers matching the submitted filters, ordered by name. Filter fields: NAME, ORGANIZATION, INTERESTS. Operators: EQ, GT, GTEQ, LT, LTEQ, NE. At most one field may carry an inequality operator.
// @Tags speakers
// @Accept json
// @Produce json
// @Param body body QuerySpeakersRequest true "Query filters (may be empty)"
// @Success 200 {object} controllers.SpeakerListSuccessResponse "data is an array of speakers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown field or operator, or multiple inequality fields)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/query [post]
func (c *SpeakerController) QuerySpeakers(w http.ResponseWriter, r *http.Request) {
	var req QuerySpeakersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	forms, err := c.Service.QuerySpeakers(r.Context(), req.Filters)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if forms == nil {
		forms = []*domain.SpeakerForm{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, forms)
}

// GetSpeakerWithMostSessions godoc
// @Summary Get the speaker with the most sessions
// @Description Tallies speaker references across all sessions and returns the speaker with the most. Returns 404 when no session has a speaker.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SpeakerSuccessResponse "data contains the speaker"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/most-sessions [get]
func (c *SpeakerController) GetSpeakerWithMostSessions(w http.ResponseWriter, r *http.Request) {
	form, err := c.Service.GetSpeakerWithHighestNumberOfSessions(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, form)
}
