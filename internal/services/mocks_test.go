package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProfileRepo struct {
	profiles map[string]*domain.Profile
	err      error
	creates  int
	updates  int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.creates++
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	return m.GetByUserID(ctx, userID)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.profiles[profile.UserID]; !ok {
		return domain.ErrNotFound
	}
	m.updates++
	m.profiles[profile.UserID] = profile
	return nil
}

type mockConferenceRepo struct {
	confs       map[string]*domain.Conference
	queryResult []*domain.Conference
	soldOut     []string
	seatUpdates map[string]int
	err         error
	nextID      int
}

func newMockConferenceRepo() *mockConferenceRepo {
	return &mockConferenceRepo{
		confs:       make(map[string]*domain.Conference),
		seatUpdates: make(map[string]int),
	}
}

func (m *mockConferenceRepo) Create(ctx context.Context, conf *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	conf.ID = fmt.Sprintf("conf-%d", m.nextID)
	m.confs[conf.ID] = conf
	return nil
}

func (m *mockConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.confs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockConferenceRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Conference, error) {
	return m.GetByID(ctx, id)
}

func (m *mockConferenceRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, c := range m.confs {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, id := range ids {
		if c, ok := m.confs[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepo) UpdateSeats(ctx context.Context, id string, seatsAvailable int) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.confs[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.SeatsAvailable = seatsAvailable
	m.seatUpdates[id] = seatsAvailable
	return nil
}

func (m *mockConferenceRepo) Query(ctx context.Context, plan *query.Plan) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.queryResult, nil
}

func (m *mockConferenceRepo) ListNearlySoldOutNames(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.soldOut, nil
}

type mockSessionRepo struct {
	sessions []*domain.Session
	err      error
	nextID   int
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	session.ID = fmt.Sprintf("sess-%d", m.nextID)
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSessionRepo) filter(keep func(*domain.Session) bool) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool { return s.ConferenceID == conferenceID })
}

func (m *mockSessionRepo) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool {
		return s.ConferenceID == conferenceID && s.TypeOfSession == typeOfSession
	})
}

func (m *mockSessionRepo) ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speakerID string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool {
		return s.ConferenceID == conferenceID && s.SpeakerID == speakerID
	})
}

func (m *mockSessionRepo) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool { return s.SpeakerID == speakerID })
}

func (m *mockSessionRepo) ListByStartTime(ctx context.Context, startTime int) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool { return s.StartTime == startTime })
}

func (m *mockSessionRepo) ListByMinStartTimeAndDuration(ctx context.Context, startTime, duration int) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool {
		return s.StartTime >= startTime && s.Duration == duration
	})
}

func (m *mockSessionRepo) ListByMinStartTimeDurationHighlight(ctx context.Context, startTime, duration int, highlight string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool {
		return s.StartTime >= startTime && s.Duration == duration && slices.Contains(s.Highlights, highlight)
	})
}

func (m *mockSessionRepo) ListByTypeNot(ctx context.Context, typeOfSession string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool { return s.TypeOfSession != typeOfSession })
}

func (m *mockSessionRepo) ListAll(ctx context.Context) ([]*domain.Session, error) {
	return m.filter(func(*domain.Session) bool { return true })
}

func (m *mockSessionRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	return m.filter(func(s *domain.Session) bool { return slices.Contains(ids, s.ID) })
}

type mockSpeakerRepo struct {
	speakers    map[string]*domain.Speaker
	queryResult []*domain.Speaker
	err         error
	nextID      int
}

func newMockSpeakerRepo() *mockSpeakerRepo {
	return &mockSpeakerRepo{speakers: make(map[string]*domain.Speaker)}
}

func (m *mockSpeakerRepo) Create(ctx context.Context, speaker *domain.Speaker) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	speaker.ID = fmt.Sprintf("spk-%d", m.nextID)
	m.speakers[speaker.ID] = speaker
	return nil
}

func (m *mockSpeakerRepo) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSpeakerRepo) Query(ctx context.Context, plan *query.Plan) ([]*domain.Speaker, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.queryResult, nil
}

// mockTransactor hands the same mocks to the transactional function; tests
// observe the writes directly on the mocks.
type mockTransactor struct {
	profiles    domain.ProfileRepository
	conferences domain.ConferenceRepository
	sessions    domain.SessionRepository
	speakers    domain.SpeakerRepository
}

func (m *mockTransactor) InTx(ctx context.Context, fn func(ctx context.Context, s domain.Stores) error) error {
	return fn(ctx, domain.Stores{
		Profiles:    m.profiles,
		Conferences: m.conferences,
		Sessions:    m.sessions,
		Speakers:    m.speakers,
	})
}

type mockCache struct {
	announcement    string
	announcementSet bool
	featured        string
	featuredSet     bool
	deletes         int
}

func (m *mockCache) SetAnnouncement(text string) {
	m.announcement = text
	m.announcementSet = true
}

func (m *mockCache) GetAnnouncement() (string, bool) {
	return m.announcement, m.announcementSet
}

func (m *mockCache) DeleteAnnouncement() {
	m.announcement = ""
	m.announcementSet = false
	m.deletes++
}

func (m *mockCache) SetFeaturedSpeaker(text string) {
	m.featured = text
	m.featuredSet = true
}

func (m *mockCache) GetFeaturedSpeaker() (string, bool) {
	return m.featured, m.featuredSet
}

type mockDispatcher struct {
	jobs []domain.Job
	err  error
}

func (m *mockDispatcher) Enqueue(ctx context.Context, job domain.Job) error {
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *mockDispatcher) kinds() string {
	var kinds []string
	for _, j := range m.jobs {
		kinds = append(kinds, string(j.Kind))
	}
	return strings.Join(kinds, ",")
}
