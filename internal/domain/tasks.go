package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobKind tags a deferred job payload.
type JobKind string

const (
	JobConfirmationEmail JobKind = "confirmation_email"
	JobFeaturedSpeaker   JobKind = "featured_speaker"
)

// ConfirmationEmailPayload is the payload of a create-confirmation email job.
type ConfirmationEmailPayload struct {
	To         string `json:"to"`
	EntityKind string `json:"entity_kind"` // "conference", "session", or "speaker"
	Info       string `json:"info"`
}

// FeaturedSpeakerPayload is the payload of a featured-speaker recompute job.
type FeaturedSpeakerPayload struct {
	WebsafeConferenceKey string `json:"websafe_conference_key"`
	WebsafeSpeakerKey    string `json:"websafe_speaker_key"`
	SpeakerName          string `json:"speaker_name"`
}

// Job is an explicit description of a deferred side effect produced by a
// mutation. Exactly one payload field is set, matching Kind. Jobs are
// delivered at least once, asynchronously, with no ordering guarantee.
type Job struct {
	ID                string                    `json:"id"`
	Kind              JobKind                   `json:"kind"`
	EnqueuedAt        time.Time                 `json:"enqueued_at"`
	ConfirmationEmail *ConfirmationEmailPayload `json:"confirmation_email,omitempty"`
	FeaturedSpeaker   *FeaturedSpeakerPayload   `json:"featured_speaker,omitempty"`
}

// NewConfirmationEmailJob describes a create-confirmation email to be sent.
func NewConfirmationEmailJob(to, entityKind, info string) Job {
	return Job{
		ID:         uuid.NewString(),
		Kind:       JobConfirmationEmail,
		EnqueuedAt: time.Now(),
		ConfirmationEmail: &ConfirmationEmailPayload{
			To:         to,
			EntityKind: entityKind,
			Info:       info,
		},
	}
}

// NewFeaturedSpeakerJob describes a featured-speaker recompute.
func NewFeaturedSpeakerJob(websafeConferenceKey, websafeSpeakerKey, speakerName string) Job {
	return Job{
		ID:         uuid.NewString(),
		Kind:       JobFeaturedSpeaker,
		EnqueuedAt: time.Now(),
		FeaturedSpeaker: &FeaturedSpeakerPayload{
			WebsafeConferenceKey: websafeConferenceKey,
			WebsafeSpeakerKey:    websafeSpeakerKey,
			SpeakerName:          speakerName,
		},
	}
}

// Dispatcher accepts jobs for asynchronous execution outside the
// request/response cycle. A failed or lost enqueue never rolls back the
// mutation that produced the job.
type Dispatcher interface {
	Enqueue(ctx context.Context, job Job) error
}
