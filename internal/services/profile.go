package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo domain.ProfileRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(profileRepo domain.ProfileRepository) domain.ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// getOrCreateProfile loads the caller's profile, creating it from the identity
// claims on first access. Shared by every service that touches profiles.
func getOrCreateProfile(ctx context.Context, repo domain.ProfileRepository, identity *domain.Identity) (*domain.Profile, error) {
	if identity == nil || identity.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	profile, err := repo.GetByUserID(ctx, identity.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile = domain.NewProfile(identity, time.Now())
	if err := repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, identity *domain.Identity) (*domain.ProfileForm, error) {
	profile, err := getOrCreateProfile(ctx, s.profileRepo, identity)
	if err != nil {
		return nil, err
	}
	return domain.NewProfileForm(profile)
}

func (s *profileService) SaveProfile(ctx context.Context, identity *domain.Identity, displayName, teeShirtSize string) (*domain.ProfileForm, error) {
	profile, err := getOrCreateProfile(ctx, s.profileRepo, identity)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		profile.DisplayName = displayName
	}
	if teeShirtSize != "" {
		size, err := domain.ParseTeeShirtSize(teeShirtSize)
		if err != nil {
			return nil, err
		}
		profile.TeeShirtSize = size
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return domain.NewProfileForm(profile)
}
