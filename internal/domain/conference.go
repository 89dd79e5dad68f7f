package domain

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/keys"
	"conferencecentral/internal/query"
)

// Creation defaults applied when the corresponding inbound fields are unset.
const DefaultCity = "Default City"

// DefaultTopics returns the topic list applied when none is submitted.
func DefaultTopics() []string {
	return []string{"Default", "Topic"}
}

// DateLayout is the canonical wire format for conference and session dates.
const DateLayout = "2006-01-02"

// Conference is a conference created by a profile. OwnerID is the explicit
// foreign key to the owning profile; ancestor-scoped queries go through the
// owner_id index. Invariant: 0 <= SeatsAvailable <= MaxAttendees at rest;
// SeatsAvailable changes only inside the registration mutator.
type Conference struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Topics         []string   `json:"topics"`
	City           string     `json:"city"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// WebsafeKey returns the opaque key exposed to clients.
func (c *Conference) WebsafeKey() string {
	return keys.Encode(keys.KindConference, c.ID)
}

// ConferenceRepository defines the interface for conference storage.
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	// GetByIDForUpdate locks the conference row for the duration of the
	// surrounding transaction. Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*Conference, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Conference, error)
	// GetManyByIDs fetches conferences in a single batched query. Missing ids
	// are silently absent from the result.
	GetManyByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	UpdateSeats(ctx context.Context, id string, seatsAvailable int) error
	Query(ctx context.Context, plan *query.Plan) ([]*Conference, error)
	// ListNearlySoldOutNames returns the names of conferences with
	// 0 < seats_available <= 5, for the announcement job.
	ListNearlySoldOutNames(ctx context.Context) ([]string, error)
}

// ConferenceForm is the outbound representation of a Conference. Dates are
// formatted with DateLayout; WebsafeKey is the only identity exposed.
type ConferenceForm struct {
	WebsafeKey           string   `json:"websafe_key"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	OrganizerUserID      string   `json:"organizer_user_id"`
	OrganizerDisplayName string   `json:"organizer_display_name,omitempty"`
	Topics               []string `json:"topics"`
	City                 string   `json:"city,omitempty"`
	StartDate            string   `json:"start_date,omitempty"`
	EndDate              string   `json:"end_date,omitempty"`
	Month                int      `json:"month"`
	MaxAttendees         int      `json:"max_attendees"`
	SeatsAvailable       int      `json:"seats_available"`
}

// NewConferenceForm projects a Conference into its outbound form, decorated
// with the owning profile's display name when available.
func NewConferenceForm(c *Conference, organizerDisplayName string) (*ConferenceForm, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("conference form: id is unset")
	}
	if c.Name == "" {
		return nil, fmt.Errorf("conference form: name is unset")
	}
	form := &ConferenceForm{
		WebsafeKey:           c.WebsafeKey(),
		Name:                 c.Name,
		Description:          c.Description,
		OrganizerUserID:      c.OwnerID,
		OrganizerDisplayName: organizerDisplayName,
		Topics:               c.Topics,
		City:                 c.City,
		Month:                c.Month,
		MaxAttendees:         c.MaxAttendees,
		SeatsAvailable:       c.SeatsAvailable,
	}
	if form.Topics == nil {
		form.Topics = []string{}
	}
	if c.StartDate != nil {
		form.StartDate = c.StartDate.Format(DateLayout)
	}
	if c.EndDate != nil {
		form.EndDate = c.EndDate.Format(DateLayout)
	}
	return form, nil
}

// CreateConferenceInput carries the client-supplied fields for a new
// conference. The server fills owner, month, and the seat count.
type CreateConferenceInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// ConferenceService defines the business logic for conferences, registration,
// and the announcement slot.
type ConferenceService interface {
	CreateConference(ctx context.Context, identity *Identity, in *CreateConferenceInput) (*ConferenceForm, error)
	QueryConferences(ctx context.Context, filters []query.Filter) ([]*ConferenceForm, error)
	GetConferencesCreated(ctx context.Context, identity *Identity) ([]*ConferenceForm, error)
	GetConference(ctx context.Context, websafeConferenceKey string) (*ConferenceForm, error)
	// RegisterForConference registers the caller. It returns true on success;
	// duplicate registration and a full conference fail with ErrConflict.
	RegisterForConference(ctx context.Context, identity *Identity, websafeConferenceKey string) (bool, error)
	// UnregisterFromConference removes the caller's registration. It returns
	// false, not an error, when no registration exists.
	UnregisterFromConference(ctx context.Context, identity *Identity, websafeConferenceKey string) (bool, error)
	GetConferencesToAttend(ctx context.Context, identity *Identity) ([]*ConferenceForm, error)
	// GetAnnouncement returns the published announcement, or "" when unset.
	GetAnnouncement(ctx context.Context) (string, error)
	// RefreshAnnouncement recomputes the nearly-sold-out announcement and
	// publishes or clears the cache slot. Invoked by the cron endpoint.
	RefreshAnnouncement(ctx context.Context) (string, error)
}
