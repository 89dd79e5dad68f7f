package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type speakerService struct {
	speakerRepo domain.SpeakerRepository
	sessionRepo domain.SessionRepository
	dispatcher  domain.Dispatcher
	logger      *slog.Logger
}

// NewSpeakerService creates a SpeakerService with the given collaborators.
func NewSpeakerService(
	speakerRepo domain.SpeakerRepository,
	sessionRepo domain.SessionRepository,
	dispatcher domain.Dispatcher,
	logger *slog.Logger,
) domain.SpeakerService {
	return &speakerService{
		speakerRepo: speakerRepo,
		sessionRepo: sessionRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (s *speakerService) CreateSpeaker(ctx context.Context, identity *domain.Identity, in *domain.CreateSpeakerInput) (*domain.SpeakerForm, error) {
	if identity == nil || identity.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: speaker name is required", domain.ErrInvalidInput)
	}

	speaker := &domain.Speaker{
		Name:         in.Name,
		Organization: in.Organization,
		Interests:    in.Interests,
		CreatedAt:    time.Now(),
	}
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return nil, fmt.Errorf("create speaker: %w", err)
	}

	info := speaker.Name
	if speaker.Organization != "" {
		info += " (" + speaker.Organization + ")"
	}
	if err := s.dispatcher.Enqueue(ctx, domain.NewConfirmationEmailJob(identity.Email, "speaker", info)); err != nil {
		s.logger.ErrorContext(ctx, "enqueue job failed", "kind", domain.JobConfirmationEmail, "err", err)
	}

	return domain.NewSpeakerForm(speaker)
}

func (s *speakerService) QuerySpeakers(ctx context.Context, filters []query.Filter) ([]*domain.SpeakerForm, error) {
	plan, err := query.Compile(filters, query.ParseSpeakerField, "name")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	speakers, err := s.speakerRepo.Query(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("query speakers: %w", err)
	}

	forms := make([]*domain.SpeakerForm, 0, len(speakers))
	for _, speaker := range speakers {
		form, err := domain.NewSpeakerForm(speaker)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// GetSpeakerWithHighestNumberOfSessions scans all sessions, tallies speaker
// references, and returns the most frequent speaker. Ties go to the speaker
// whose count was reached first in session creation order.
func (s *speakerService) GetSpeakerWithHighestNumberOfSessions(ctx context.Context) (*domain.SpeakerForm, error) {
	sessions, err := s.sessionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	counts := make(map[string]int)
	best := ""
	for _, session := range sessions {
		if session.SpeakerID == "" {
			continue
		}
		counts[session.SpeakerID]++
		if best == "" || counts[session.SpeakerID] > counts[best] {
			best = session.SpeakerID
		}
	}
	if best == "" {
		return nil, fmt.Errorf("%w: no sessions with speakers exist", domain.ErrNotFound)
	}

	speaker, err := s.speakerRepo.GetByID(ctx, best)
	if err != nil {
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return domain.NewSpeakerForm(speaker)
}
