package domain

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/keys"
	"conferencecentral/internal/query"
)

// Speaker is an independent entity referenced by sessions via a weak
// reference. Speakers are never updated or deleted.
type Speaker struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Organization string    `json:"organization"`
	Interests    []string  `json:"interests"`
	CreatedAt    time.Time `json:"created_at"`
}

// WebsafeKey returns the opaque key exposed to clients.
func (s *Speaker) WebsafeKey() string {
	return keys.Encode(keys.KindSpeaker, s.ID)
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	Query(ctx context.Context, plan *query.Plan) ([]*Speaker, error)
}

// SpeakerForm is the outbound representation of a Speaker.
type SpeakerForm struct {
	WebsafeKey   string   `json:"websafe_key"`
	Name         string   `json:"name"`
	Organization string   `json:"organization,omitempty"`
	Interests    []string `json:"interests"`
}

// NewSpeakerForm projects a Speaker into its outbound form.
func NewSpeakerForm(s *Speaker) (*SpeakerForm, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("speaker form: id is unset")
	}
	if s.Name == "" {
		return nil, fmt.Errorf("speaker form: name is unset")
	}
	form := &SpeakerForm{
		WebsafeKey:   s.WebsafeKey(),
		Name:         s.Name,
		Organization: s.Organization,
		Interests:    s.Interests,
	}
	if form.Interests == nil {
		form.Interests = []string{}
	}
	return form, nil
}

// CreateSpeakerInput carries the client-supplied fields for a new speaker.
type CreateSpeakerInput struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Interests    []string `json:"interests"`
}

// SpeakerService defines the business logic for speakers.
type SpeakerService interface {
	CreateSpeaker(ctx context.Context, identity *Identity, in *CreateSpeakerInput) (*SpeakerForm, error)
	QuerySpeakers(ctx context.Context, filters []query.Filter) ([]*SpeakerForm, error)
	// GetSpeakerWithHighestNumberOfSessions tallies speaker references across
	// all sessions and returns the most frequent speaker.
	GetSpeakerWithHighestNumberOfSessions(ctx context.Context) (*SpeakerForm, error)
}
