package services

import (
	"context"
	"fmt"
	"log"

	"conferencecentral/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendConferenceConfirmation sends the conference-created confirmation email.
func (s *emailService) SendConferenceConfirmation(ctx context.Context, data *domain.ConfirmationEmailData) error {
	return s.send("conference_confirmation", data)
}

// SendSessionConfirmation sends the session-created confirmation email.
func (s *emailService) SendSessionConfirmation(ctx context.Context, data *domain.ConfirmationEmailData) error {
	return s.send("session_confirmation", data)
}

// SendSpeakerConfirmation sends the speaker-added confirmation email.
func (s *emailService) SendSpeakerConfirmation(ctx context.Context, data *domain.ConfirmationEmailData) error {
	return s.send("speaker_confirmation", data)
}

func (s *emailService) send(templateName string, data *domain.ConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("confirmation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	log.Printf("[EMAIL] %s sent to %s", templateName, data.Email)
	return nil
}
