package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// RefreshAnnouncementResponse is the data payload for POST /internal/cron/announcement (200).
type RefreshAnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

// RefreshAnnouncementSuccessResponse is the success response envelope for POST /internal/cron/announcement (200).
type RefreshAnnouncementSuccessResponse struct {
	Data  RefreshAnnouncementResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// InternalController hosts endpoints invoked by the scheduler, not by end
// users. Deployments should keep /internal/ off the public ingress.
type InternalController struct {
	Logger      *slog.Logger
	Conferences domain.ConferenceService
}

func NewInternalController(logger *slog.Logger, conferences domain.ConferenceService) *InternalController {
	return &InternalController{
		Logger:      logger,
		Conferences: conferences,
	}
}

// RefreshAnnouncement godoc
// @Summary Recompute the nearly-sold-out announcement
// @Description Recomputes the announcement from conferences with five or fewer seats left and publishes it. With no such conferences the slot is cleared. Intended for the scheduler.
// @Tags internal
// @Produce json
// @Success 200 {object} controllers.RefreshAnnouncementSuccessResponse "data contains the published announcement (empty when cleared)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /internal/cron/announcement [post]
func (c *InternalController) RefreshAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Conferences.RefreshAnnouncement(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RefreshAnnouncementResponse{Announcement: announcement})
}
