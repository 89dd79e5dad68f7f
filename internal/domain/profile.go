package domain

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// TeeShirtSize is the closed enumeration of t-shirt sizes.
type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

// ParseTeeShirtSize validates a t-shirt size value.
func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	switch size := TeeShirtSize(s); size {
	case TeeShirtNotSpecified, TeeShirtXSM, TeeShirtXSW, TeeShirtSM, TeeShirtSW,
		TeeShirtMM, TeeShirtMW, TeeShirtLM, TeeShirtLW, TeeShirtXLM, TeeShirtXLW,
		TeeShirtXXLM, TeeShirtXXLW, TeeShirtXXXLM, TeeShirtXXXLW:
		return size, nil
	}
	return "", fmt.Errorf("%w: unknown tee shirt size %q", ErrInvalidInput, s)
}

// Profile is a user profile. It is created lazily on first authenticated
// access and never deleted. ConferenceKeysToAttend and SessionWishlist hold
// websafe keys of conferences and sessions the user tracks; they are relation
// pointers, not ownership.
type Profile struct {
	UserID                 string       `json:"user_id"`
	DisplayName            string       `json:"display_name"`
	MainEmail              string       `json:"main_email"`
	TeeShirtSize           TeeShirtSize `json:"tee_shirt_size"`
	ConferenceKeysToAttend []string     `json:"conference_keys_to_attend"`
	SessionWishlist        []string     `json:"session_wishlist"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// NewProfile returns the profile created lazily for a first-time caller.
func NewProfile(identity *Identity, now time.Time) *Profile {
	return &Profile{
		UserID:       identity.UserID,
		DisplayName:  identity.DisplayName,
		MainEmail:    identity.Email,
		TeeShirtSize: TeeShirtNotSpecified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAttending reports whether the conference websafe key is on the profile.
func (p *Profile) IsAttending(websafeConferenceKey string) bool {
	return slices.Contains(p.ConferenceKeysToAttend, websafeConferenceKey)
}

// HasWishlisted reports whether the session websafe key is on the wishlist.
func (p *Profile) HasWishlisted(websafeSessionKey string) bool {
	return slices.Contains(p.SessionWishlist, websafeSessionKey)
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// GetByUserIDForUpdate locks the profile row for the duration of the
	// surrounding transaction. Outside a transaction it behaves like GetByUserID.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

// ProfileForm is the outbound representation of a Profile.
type ProfileForm struct {
	UserID                 string   `json:"user_id"`
	DisplayName            string   `json:"display_name"`
	MainEmail              string   `json:"main_email"`
	TeeShirtSize           string   `json:"tee_shirt_size"`
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend"`
	SessionWishlist        []string `json:"session_wishlist"`
}

// NewProfileForm projects a Profile into its outbound form.
func NewProfileForm(p *Profile) (*ProfileForm, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("profile form: user id is unset")
	}
	form := &ProfileForm{
		UserID:                 p.UserID,
		DisplayName:            p.DisplayName,
		MainEmail:              p.MainEmail,
		TeeShirtSize:           string(p.TeeShirtSize),
		ConferenceKeysToAttend: p.ConferenceKeysToAttend,
		SessionWishlist:        p.SessionWishlist,
	}
	if form.ConferenceKeysToAttend == nil {
		form.ConferenceKeysToAttend = []string{}
	}
	if form.SessionWishlist == nil {
		form.SessionWishlist = []string{}
	}
	return form, nil
}

// ProfileService defines the business logic for profiles.
type ProfileService interface {
	// GetProfile returns the caller's profile, creating it on first access.
	GetProfile(ctx context.Context, identity *Identity) (*ProfileForm, error)
	// SaveProfile updates the user-modifiable fields that are set and returns
	// the updated profile.
	SaveProfile(ctx context.Context, identity *Identity, displayName, teeShirtSize string) (*ProfileForm, error)
}
