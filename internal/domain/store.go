package domain

import "context"

// Stores bundles the repositories visible inside a store transaction.
type Stores struct {
	Profiles    ProfileRepository
	Conferences ConferenceRepository
	Sessions    SessionRepository
	Speakers    SpeakerRepository
}

// Transactor runs a function within a single all-or-nothing store
// transaction: every write made through the passed Stores commits together or
// not at all. The store serializes conflicting transactions on the rows they
// touch.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
