package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/keys"
)

// noFeaturedSpeaker is returned when the featured-speaker slot is unset.
const noFeaturedSpeaker = "No Featured Speaker"

type sessionService struct {
	profileRepo    domain.ProfileRepository
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	speakerRepo    domain.SpeakerRepository
	tx             domain.Transactor
	cache          domain.AnnouncementCache
	dispatcher     domain.Dispatcher
	logger         *slog.Logger
}

// NewSessionService creates a SessionService with the given collaborators.
func NewSessionService(
	profileRepo domain.ProfileRepository,
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	speakerRepo domain.SpeakerRepository,
	tx domain.Transactor,
	cache domain.AnnouncementCache,
	dispatcher domain.Dispatcher,
	logger *slog.Logger,
) domain.SessionService {
	return &sessionService{
		profileRepo:    profileRepo,
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		speakerRepo:    speakerRepo,
		tx:             tx,
		cache:          cache,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, identity *domain.Identity, websafeConferenceKey string, in *domain.CreateSessionInput) (*domain.SessionForm, error) {
	if identity == nil || identity.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: session name is required", domain.ErrInvalidInput)
	}

	confID, err := keys.DecodeKind(websafeConferenceKey, keys.KindConference)
	if err != nil {
		return nil, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
	}
	conf, err := s.conferenceRepo.GetByID(ctx, confID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}

	// Only the user who created the conference may add sessions to it.
	if conf.OwnerID != identity.UserID {
		return nil, fmt.Errorf("%w: only the conference creator can add sessions", domain.ErrUnauthorized)
	}

	speakerID, err := keys.DecodeKind(in.WebsafeSpeakerKey, keys.KindSpeaker)
	if err != nil {
		return nil, fmt.Errorf("%w: no speaker found with key %q", domain.ErrNotFound, in.WebsafeSpeakerKey)
	}
	speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no speaker found with key %q", domain.ErrNotFound, in.WebsafeSpeakerKey)
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	}
	if in.StartTime < 0 || in.StartTime > 2359 {
		return nil, fmt.Errorf("%w: start time must be military notation between 0000 and 2359", domain.ErrInvalidInput)
	}

	session := &domain.Session{
		ConferenceID:  confID,
		Name:          in.Name,
		Highlights:    in.Highlights,
		SpeakerID:     speakerID,
		Duration:      in.Duration,
		TypeOfSession: in.TypeOfSession,
		Date:          date,
		StartTime:     in.StartTime,
		CreatedAt:     time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.enqueue(ctx, domain.NewConfirmationEmailJob(identity.Email, "session", describeSession(session)))
	s.enqueue(ctx, domain.NewFeaturedSpeakerJob(websafeConferenceKey, in.WebsafeSpeakerKey, speaker.Name))

	return domain.NewSessionForm(session)
}

func (s *sessionService) GetConferenceSessions(ctx context.Context, websafeConferenceKey string) ([]*domain.SessionForm, error) {
	confID, err := keys.DecodeKind(websafeConferenceKey, keys.KindConference)
	if err != nil {
		return nil, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
	}
	sessions, err := s.sessionRepo.ListByConferenceID(ctx, confID)
	if err != nil {
		return nil, fmt.Errorf("list conference sessions: %w", err)
	}
	return sessionForms(sessions)
}

func (s *sessionService) GetConferenceSessionsByType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*domain.SessionForm, error) {
	confID, err := keys.DecodeKind(websafeConferenceKey, keys.KindConference)
	if err != nil {
		return nil, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
	}
	sessions, err := s.sessionRepo.ListByConferenceAndType(ctx, confID, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list conference sessions by type: %w", err)
	}
	return sessionForms(sessions)
}

func (s *sessionService) GetSessionsBySpeaker(ctx context.Context, websafeSpeakerKey string) ([]*domain.SessionForm, error) {
	speakerID, err := keys.DecodeKind(websafeSpeakerKey, keys.KindSpeaker)
	if err != nil {
		return nil, fmt.Errorf("%w: no speaker found with key %q", domain.ErrNotFound, websafeSpeakerKey)
	}
	sessions, err := s.sessionRepo.ListBySpeakerID(ctx, speakerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions by speaker: %w", err)
	}
	return sessionForms(sessions)
}

func (s *sessionService) GetSessionsByStartTime(ctx context.Context, startTime int) ([]*domain.SessionForm, error) {
	sessions, err := s.sessionRepo.ListByStartTime(ctx, startTime)
	if err != nil {
		return nil, fmt.Errorf("list sessions by start time: %w", err)
	}
	return sessionForms(sessions)
}

func (s *sessionService) GetSessionsByStartTimeAndDuration(ctx context.Context, startTime, duration int) ([]*domain.SessionForm, error) {
	sessions, err := s.sessionRepo.ListByMinStartTimeAndDuration(ctx, startTime, duration)
	if err != nil {
		return nil, fmt.Errorf("list sessions by start time and duration: %w", err)
	}
	return sessionForms(sessions)
}

func (s *sessionService) GetSessionsByMinStartTimeDurationHighlights(ctx context.Context, startTime, duration int, highlights string) ([]*domain.SessionForm, error) {
	sessions, err := s.sessionRepo.ListByMinStartTimeDurationHighlight(ctx, startTime, duration, highlights)
	if err != nil {
		return nil, fmt.Errorf("list sessions by start time, duration, highlights: %w", err)
	}
	return sessionForms(sessions)
}

// QuerySessionsByTypeAndStartTime keeps the historical two-inequality
// workaround: the store query selects sessions of a *differing* type, and the
// start-time bound is applied in application code.
func (s *sessionService) QuerySessionsByTypeAndStartTime(ctx context.Context, typeOfSession string, startTime int) ([]*domain.SessionForm, error) {
	sessions, err := s.sessionRepo.ListByTypeNot(ctx, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions by type: %w", err)
	}
	var before []*domain.Session
	for _, session := range sessions {
		if session.StartTime < startTime {
			before = append(before, session)
		}
	}
	return sessionForms(before)
}

func (s *sessionService) AddSessionToWishlist(ctx context.Context, identity *domain.Identity, websafeSessionKey string) (bool, error) {
	return s.toggleWishlist(ctx, identity, websafeSessionKey, true)
}

func (s *sessionService) DeleteSessionInWishlist(ctx context.Context, identity *domain.Identity, websafeSessionKey string) (bool, error) {
	return s.toggleWishlist(ctx, identity, websafeSessionKey, false)
}

func (s *sessionService) toggleWishlist(ctx context.Context, identity *domain.Identity, websafeSessionKey string, add bool) (bool, error) {
	if identity == nil || identity.UserID == "" {
		return false, domain.ErrUnauthorized
	}
	// A key of any other kind never resolves to a session.
	sessionID, err := keys.DecodeKind(websafeSessionKey, keys.KindSession)
	if err != nil {
		return false, fmt.Errorf("%w: no session found with key %q", domain.ErrNotFound, websafeSessionKey)
	}

	result := false
	err = s.tx.InTx(ctx, func(ctx context.Context, st domain.Stores) error {
		if _, err := getOrCreateProfile(ctx, st.Profiles, identity); err != nil {
			return err
		}
		profile, err := st.Profiles.GetByUserIDForUpdate(ctx, identity.UserID)
		if err != nil {
			return fmt.Errorf("lock profile: %w", err)
		}

		if _, err := st.Sessions.GetByID(ctx, sessionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: no session found with key %q", domain.ErrNotFound, websafeSessionKey)
			}
			return fmt.Errorf("get session: %w", err)
		}

		if add {
			if profile.HasWishlisted(websafeSessionKey) {
				return fmt.Errorf("%w: this session is already in the wishlist", domain.ErrConflict)
			}
			profile.SessionWishlist = append(profile.SessionWishlist, websafeSessionKey)
			result = true
		} else {
			if !profile.HasWishlisted(websafeSessionKey) {
				result = false
				return nil
			}
			profile.SessionWishlist = removeString(profile.SessionWishlist, websafeSessionKey)
			result = true
		}

		profile.UpdatedAt = time.Now()
		if err := st.Profiles.Update(ctx, profile); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

func (s *sessionService) GetSessionsInWishlist(ctx context.Context, identity *domain.Identity) ([]*domain.SessionForm, error) {
	profile, err := getOrCreateProfile(ctx, s.profileRepo, identity)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profile.SessionWishlist))
	for _, websafe := range profile.SessionWishlist {
		id, err := keys.DecodeKind(websafe, keys.KindSession)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping malformed session key on wishlist",
				"user_id", profile.UserID, "key", websafe)
			continue
		}
		ids = append(ids, id)
	}

	sessions, err := s.sessionRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get wishlist sessions: %w", err)
	}
	return sessionForms(sessions)
}

// SetFeaturedSpeaker publishes the featured-speaker message when the speaker
// now has more than one session in the conference. With one or zero matches
// the existing slot is deliberately left untouched, matching the historical
// behavior.
func (s *sessionService) SetFeaturedSpeaker(ctx context.Context, websafeConferenceKey, websafeSpeakerKey, speakerName string) error {
	confID, err := keys.DecodeKind(websafeConferenceKey, keys.KindConference)
	if err != nil {
		return fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
	}
	speakerID, err := keys.DecodeKind(websafeSpeakerKey, keys.KindSpeaker)
	if err != nil {
		return fmt.Errorf("%w: no speaker found with key %q", domain.ErrNotFound, websafeSpeakerKey)
	}

	sessions, err := s.sessionRepo.ListByConferenceAndSpeaker(ctx, confID, speakerID)
	if err != nil {
		return fmt.Errorf("list sessions by conference and speaker: %w", err)
	}
	if len(sessions) <= 1 {
		return nil
	}

	names := make([]string, 0, len(sessions))
	for _, session := range sessions {
		names = append(names, session.Name)
	}
	message := speakerName + " is featured speaker and he will be delivering talk in following sessions. " +
		strings.Join(names, ", ") + "."
	s.cache.SetFeaturedSpeaker(message)
	return nil
}

func (s *sessionService) GetFeaturedSpeaker(ctx context.Context) (string, error) {
	text, ok := s.cache.GetFeaturedSpeaker()
	if !ok || text == "" {
		return noFeaturedSpeaker, nil
	}
	return text, nil
}

func (s *sessionService) enqueue(ctx context.Context, job domain.Job) {
	if err := s.dispatcher.Enqueue(ctx, job); err != nil {
		s.logger.ErrorContext(ctx, "enqueue job failed", "kind", job.Kind, "err", err)
	}
}

func sessionForms(sessions []*domain.Session) ([]*domain.SessionForm, error) {
	forms := make([]*domain.SessionForm, 0, len(sessions))
	for _, session := range sessions {
		form, err := domain.NewSessionForm(session)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func describeSession(s *domain.Session) string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	if s.TypeOfSession != "" {
		sb.WriteString(" (" + s.TypeOfSession + ")")
	}
	if s.Date != nil {
		sb.WriteString(", " + s.Date.Format(domain.DateLayout))
	}
	if s.StartTime > 0 {
		sb.WriteString(fmt.Sprintf(" at %04d", s.StartTime))
	}
	return sb.String()
}
