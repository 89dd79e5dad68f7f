package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConfirmationEmailData holds data for the create-confirmation emails.
type ConfirmationEmailData struct {
	Email string
	Info  string
}

// EmailService defines the contract for sending domain-level emails. Each
// method corresponds to a create operation's confirmation template.
type EmailService interface {
	SendConferenceConfirmation(ctx context.Context, data *ConfirmationEmailData) error
	SendSessionConfirmation(ctx context.Context, data *ConfirmationEmailData) error
	SendSpeakerConfirmation(ctx context.Context, data *ConfirmationEmailData) error
}
