package tasks

import (
	"context"
	"fmt"

	"conferencecentral/internal/domain"
)

// NewConfirmationEmailHandler returns the handler for create-confirmation
// email jobs, routing to the template matching the created entity kind.
func NewConfirmationEmailHandler(emails domain.EmailService) HandlerFunc {
	return func(ctx context.Context, job domain.Job) error {
		payload := job.ConfirmationEmail
		if payload == nil {
			return fmt.Errorf("job %s is missing the confirmation email payload", job.ID)
		}
		data := &domain.ConfirmationEmailData{Email: payload.To, Info: payload.Info}
		switch payload.EntityKind {
		case "conference":
			return emails.SendConferenceConfirmation(ctx, data)
		case "session":
			return emails.SendSessionConfirmation(ctx, data)
		case "speaker":
			return emails.SendSpeakerConfirmation(ctx, data)
		}
		return fmt.Errorf("job %s has unknown entity kind %q", job.ID, payload.EntityKind)
	}
}

// NewFeaturedSpeakerHandler returns the handler for featured-speaker
// recompute jobs.
func NewFeaturedSpeakerHandler(sessions domain.SessionService) HandlerFunc {
	return func(ctx context.Context, job domain.Job) error {
		payload := job.FeaturedSpeaker
		if payload == nil {
			return fmt.Errorf("job %s is missing the featured speaker payload", job.ID)
		}
		return sessions.SetFeaturedSpeaker(ctx,
			payload.WebsafeConferenceKey, payload.WebsafeSpeakerKey, payload.SpeakerName)
	}
}
