package domain

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/keys"
)

// Session is a talk scheduled under a conference. ConferenceID is the explicit
// foreign key to the owning conference; SpeakerID is a weak reference to a
// Speaker. StartTime is 24-hour military notation, e.g. 1705 for 17:05.
// Sessions are immutable once created.
type Session struct {
	ID            string     `json:"id"`
	ConferenceID  string     `json:"conference_id"`
	Name          string     `json:"name"`
	Highlights    []string   `json:"highlights"`
	SpeakerID     string     `json:"speaker_id"`
	Duration      int        `json:"duration"`
	TypeOfSession string     `json:"type_of_session"`
	Date          *time.Time `json:"date"`
	StartTime     int        `json:"start_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

// WebsafeKey returns the opaque key exposed to clients.
func (s *Session) WebsafeKey() string {
	return keys.Encode(keys.KindSession, s.ID)
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speakerID string) ([]*Session, error)
	ListBySpeakerID(ctx context.Context, speakerID string) ([]*Session, error)
	ListByStartTime(ctx context.Context, startTime int) ([]*Session, error)
	ListByMinStartTimeAndDuration(ctx context.Context, startTime, duration int) ([]*Session, error)
	ListByMinStartTimeDurationHighlight(ctx context.Context, startTime, duration int, highlight string) ([]*Session, error)
	// ListByTypeNot returns sessions whose type differs from typeOfSession.
	ListByTypeNot(ctx context.Context, typeOfSession string) ([]*Session, error)
	ListAll(ctx context.Context) ([]*Session, error)
	// GetManyByIDs fetches sessions in a single batched query. Missing ids are
	// silently absent from the result.
	GetManyByIDs(ctx context.Context, ids []string) ([]*Session, error)
}

// SessionForm is the outbound representation of a Session.
type SessionForm struct {
	WebsafeKey           string   `json:"websafe_key"`
	WebsafeConferenceKey string   `json:"websafe_conference_key"`
	WebsafeSpeakerKey    string   `json:"websafe_speaker_key,omitempty"`
	Name                 string   `json:"name"`
	Highlights           []string `json:"highlights"`
	Duration             int      `json:"duration"`
	TypeOfSession        string   `json:"type_of_session,omitempty"`
	Date                 string   `json:"date,omitempty"`
	StartTime            int      `json:"start_time"`
}

// NewSessionForm projects a Session into its outbound form.
func NewSessionForm(s *Session) (*SessionForm, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("session form: id is unset")
	}
	if s.Name == "" {
		return nil, fmt.Errorf("session form: name is unset")
	}
	if s.ConferenceID == "" {
		return nil, fmt.Errorf("session form: conference id is unset")
	}
	form := &SessionForm{
		WebsafeKey:           s.WebsafeKey(),
		WebsafeConferenceKey: keys.Encode(keys.KindConference, s.ConferenceID),
		Name:                 s.Name,
		Highlights:           s.Highlights,
		Duration:             s.Duration,
		TypeOfSession:        s.TypeOfSession,
		StartTime:            s.StartTime,
	}
	if form.Highlights == nil {
		form.Highlights = []string{}
	}
	if s.SpeakerID != "" {
		form.WebsafeSpeakerKey = keys.Encode(keys.KindSpeaker, s.SpeakerID)
	}
	if s.Date != nil {
		form.Date = s.Date.Format(DateLayout)
	}
	return form, nil
}

// CreateSessionInput carries the client-supplied fields for a new session.
type CreateSessionInput struct {
	Name              string   `json:"name"`
	Highlights        []string `json:"highlights"`
	WebsafeSpeakerKey string   `json:"websafe_speaker_key"`
	Duration          int      `json:"duration"`
	TypeOfSession     string   `json:"type_of_session"`
	Date              string   `json:"date"`
	StartTime         int      `json:"start_time"`
}

// SessionService defines the business logic for sessions, the wishlist, and
// the featured-speaker slot.
type SessionService interface {
	// CreateSession creates a session under the conference. Only the
	// conference's owner may create sessions; other callers fail with
	// ErrUnauthorized.
	CreateSession(ctx context.Context, identity *Identity, websafeConferenceKey string, in *CreateSessionInput) (*SessionForm, error)
	GetConferenceSessions(ctx context.Context, websafeConferenceKey string) ([]*SessionForm, error)
	GetConferenceSessionsByType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*SessionForm, error)
	GetSessionsBySpeaker(ctx context.Context, websafeSpeakerKey string) ([]*SessionForm, error)
	GetSessionsByStartTime(ctx context.Context, startTime int) ([]*SessionForm, error)
	GetSessionsByStartTimeAndDuration(ctx context.Context, startTime, duration int) ([]*SessionForm, error)
	GetSessionsByMinStartTimeDurationHighlights(ctx context.Context, startTime, duration int, highlights string) ([]*SessionForm, error)
	// QuerySessionsByTypeAndStartTime selects sessions whose type differs from
	// typeOfSession, then post-filters in application code for sessions
	// starting strictly before startTime. The differing-type selection works
	// around the single-inequality-field store limit and is kept as observed.
	QuerySessionsByTypeAndStartTime(ctx context.Context, typeOfSession string, startTime int) ([]*SessionForm, error)
	// AddSessionToWishlist returns true on success; a duplicate entry fails
	// with ErrConflict.
	AddSessionToWishlist(ctx context.Context, identity *Identity, websafeSessionKey string) (bool, error)
	// DeleteSessionInWishlist returns false, not an error, when the session is
	// not on the wishlist.
	DeleteSessionInWishlist(ctx context.Context, identity *Identity, websafeSessionKey string) (bool, error)
	GetSessionsInWishlist(ctx context.Context, identity *Identity) ([]*SessionForm, error)
	// SetFeaturedSpeaker publishes the featured-speaker announcement when the
	// speaker has more than one session in the conference; with one or zero
	// matches the existing slot is left untouched. Invoked by the deferred
	// featured-speaker job.
	SetFeaturedSpeaker(ctx context.Context, websafeConferenceKey, websafeSpeakerKey, speakerName string) error
	// GetFeaturedSpeaker returns the published announcement, or a fixed
	// placeholder when unset.
	GetFeaturedSpeaker(ctx context.Context) (string, error)
}
