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
	"conferencecentral/internal/query"
)

// announcementPrefix heads the nearly-sold-out announcement text.
const announcementPrefix = "Last chance to attend! The following conferences are nearly sold out: "

type conferenceService struct {
	profileRepo    domain.ProfileRepository
	conferenceRepo domain.ConferenceRepository
	tx             domain.Transactor
	cache          domain.AnnouncementCache
	dispatcher     domain.Dispatcher
	logger         *slog.Logger
}

// NewConferenceService creates a ConferenceService with the given
// collaborators.
func NewConferenceService(
	profileRepo domain.ProfileRepository,
	conferenceRepo domain.ConferenceRepository,
	tx domain.Transactor,
	cache domain.AnnouncementCache,
	dispatcher domain.Dispatcher,
	logger *slog.Logger,
) domain.ConferenceService {
	return &conferenceService{
		profileRepo:    profileRepo,
		conferenceRepo: conferenceRepo,
		tx:             tx,
		cache:          cache,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

// parseDate parses a wire date, tolerating a trailing time portion.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if len(value) > len(domain.DateLayout) {
		value = value[:len(domain.DateLayout)]
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, value)
	}
	return &t, nil
}

func (s *conferenceService) CreateConference(ctx context.Context, identity *domain.Identity, in *domain.CreateConferenceInput) (*domain.ConferenceForm, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: conference name is required", domain.ErrInvalidInput)
	}

	// The owning profile must exist before the conference row references it.
	profile, err := getOrCreateProfile(ctx, s.profileRepo, identity)
	if err != nil {
		return nil, err
	}

	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if in.MaxAttendees < 0 {
		return nil, fmt.Errorf("%w: max attendees must not be negative", domain.ErrInvalidInput)
	}

	now := time.Now()
	conf := &domain.Conference{
		OwnerID:      identity.UserID,
		Name:         in.Name,
		Description:  in.Description,
		Topics:       in.Topics,
		City:         in.City,
		StartDate:    startDate,
		EndDate:      endDate,
		MaxAttendees: in.MaxAttendees,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if conf.City == "" {
		conf.City = domain.DefaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = domain.DefaultTopics()
	}
	if conf.StartDate != nil {
		conf.Month = int(conf.StartDate.Month())
	}
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}

	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	s.enqueue(ctx, domain.NewConfirmationEmailJob(identity.Email, "conference", describeConference(conf)))

	return domain.NewConferenceForm(conf, profile.DisplayName)
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceForm, error) {
	plan, err := query.Compile(filters, query.ParseConferenceField, "name")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	confs, err := s.conferenceRepo.Query(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return conferenceForms(confs, "")
}

func (s *conferenceService) GetConferencesCreated(ctx context.Context, identity *domain.Identity) ([]*domain.ConferenceForm, error) {
	profile, err := getOrCreateProfile(ctx, s.profileRepo, identity)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.ListByOwnerID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by owner: %w", err)
	}
	return conferenceForms(confs, profile.DisplayName)
}

func (s *conferenceService) GetConference(ctx context.Context, websafeConferenceKey string) (*domain.ConferenceForm, error) {
	id, err := keys.DecodeKind(websafeConferenceKey, keys.KindConference)
	if err != nil {
		return nil, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
	}
	conf, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}

	displayName := ""
	if owner, err := s.profileRepo.GetByUserID(ctx, conf.OwnerID); err == nil {
		displayName = owner.DisplayName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get organizer profile: %w", err)
	}
	return domain.NewConferenceForm(conf, displayName)
}

func (s *conferenceService) RegisterForConference(ctx context.Context, identity *domain.Identity, websafeConferenceKey string) (bool, error) {
	return s.toggleRegistration(ctx, identity, websafeConferenceKey, true)
}

func (s *conferenceService) UnregisterFromConference(ctx context.Context, identity *domain.Identity, websafeConferenceKey string) (bool, error) {
	return s.toggleRegistration(ctx, identity, websafeConferenceKey, false)
}

// toggleRegistration runs the registration mutator inside a single store
// transaction: the profile's key list and the conference's seat count commit
// together or not at all.
func (s *conferenceService) toggleRegistration(ctx context.Context, identity *domain.Identity, websafeConferenceKey string, register bool) (bool, error) {
	if identity == nil || identity.UserID == "" {
		return false, domain.ErrUnauthorized
	}
	confID, err := keys.DecodeKind(websafeConferenceKey, keys.KindConference)
	if err != nil {
		return false, fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
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

		conf, err := st.Conferences.GetByIDForUpdate(ctx, confID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: no conference found with key %q", domain.ErrNotFound, websafeConferenceKey)
			}
			return fmt.Errorf("get conference: %w", err)
		}

		if register {
			if profile.IsAttending(websafeConferenceKey) {
				return fmt.Errorf("%w: already registered for this conference", domain.ErrConflict)
			}
			if conf.SeatsAvailable <= 0 {
				return fmt.Errorf("%w: there are no seats available", domain.ErrConflict)
			}
			profile.ConferenceKeysToAttend = append(profile.ConferenceKeysToAttend, websafeConferenceKey)
			conf.SeatsAvailable--
			result = true
		} else {
			if !profile.IsAttending(websafeConferenceKey) {
				result = false
				return nil
			}
			profile.ConferenceKeysToAttend = removeString(profile.ConferenceKeysToAttend, websafeConferenceKey)
			conf.SeatsAvailable++
			result = true
		}

		profile.UpdatedAt = time.Now()
		if err := st.Profiles.Update(ctx, profile); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		if err := st.Conferences.UpdateSeats(ctx, conf.ID, conf.SeatsAvailable); err != nil {
			return fmt.Errorf("update seats: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

func (s *conferenceService) GetConferencesToAttend(ctx context.Context, identity *domain.Identity) ([]*domain.ConferenceForm, error) {
	profile, err := getOrCreateProfile(ctx, s.profileRepo, identity)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profile.ConferenceKeysToAttend))
	for _, websafe := range profile.ConferenceKeysToAttend {
		id, err := keys.DecodeKind(websafe, keys.KindConference)
		if err != nil {
			// A malformed stored key is skipped rather than failing the list.
			s.logger.WarnContext(ctx, "skipping malformed conference key on profile",
				"user_id", profile.UserID, "key", websafe)
			continue
		}
		ids = append(ids, id)
	}

	confs, err := s.conferenceRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get conferences to attend: %w", err)
	}
	return conferenceForms(confs, "")
}

func (s *conferenceService) GetAnnouncement(ctx context.Context) (string, error) {
	text, ok := s.cache.GetAnnouncement()
	if !ok {
		return "", nil
	}
	return text, nil
}

func (s *conferenceService) RefreshAnnouncement(ctx context.Context) (string, error) {
	names, err := s.conferenceRepo.ListNearlySoldOutNames(ctx)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}
	if len(names) == 0 {
		s.cache.DeleteAnnouncement()
		return "", nil
	}
	announcement := announcementPrefix + strings.Join(names, ", ")
	s.cache.SetAnnouncement(announcement)
	return announcement, nil
}

func (s *conferenceService) enqueue(ctx context.Context, job domain.Job) {
	if err := s.dispatcher.Enqueue(ctx, job); err != nil {
		// Deferred side effects never fail the originating mutation.
		s.logger.ErrorContext(ctx, "enqueue job failed", "kind", job.Kind, "err", err)
	}
}

func conferenceForms(confs []*domain.Conference, displayName string) ([]*domain.ConferenceForm, error) {
	forms := make([]*domain.ConferenceForm, 0, len(confs))
	for _, conf := range confs {
		form, err := domain.NewConferenceForm(conf, displayName)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func describeConference(c *domain.Conference) string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	if c.City != "" {
		sb.WriteString(", " + c.City)
	}
	if c.StartDate != nil {
		sb.WriteString(", starting " + c.StartDate.Format(domain.DateLayout))
	}
	return sb.String()
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
