package services

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"
)

func TestProfileService_GetProfile_CreatesOnFirstAccess(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewProfileService(repo)

	form, err := svc.GetProfile(context.Background(), identityFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.UserID != "u1" || form.MainEmail != "u1@example.com" || form.DisplayName != "User One" {
		t.Errorf("identity claims not copied: %+v", form)
	}
	if form.TeeShirtSize != "NOT_SPECIFIED" {
		t.Errorf("expected NOT_SPECIFIED default, got %q", form.TeeShirtSize)
	}
	if repo.creates != 1 {
		t.Errorf("expected one create, got %d", repo.creates)
	}
	if form.ConferenceKeysToAttend == nil || form.SessionWishlist == nil {
		t.Error("expected empty slices, not nil")
	}
}

func TestProfileService_GetProfile_ExistingProfileUntouched(t *testing.T) {
	repo := newMockProfileRepo()
	repo.profiles["u1"] = &domain.Profile{
		UserID:       "u1",
		DisplayName:  "Existing",
		MainEmail:    "old@example.com",
		TeeShirtSize: domain.TeeShirtLM,
	}
	svc := NewProfileService(repo)

	form, err := svc.GetProfile(context.Background(), identityFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.DisplayName != "Existing" || form.MainEmail != "old@example.com" {
		t.Errorf("stored profile modified: %+v", form)
	}
	if repo.creates != 0 {
		t.Errorf("expected no create, got %d", repo.creates)
	}
}

func TestProfileService_GetProfile_NilIdentity(t *testing.T) {
	svc := NewProfileService(newMockProfileRepo())

	_, err := svc.GetProfile(context.Background(), nil)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestProfileService_SaveProfile(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewProfileService(repo)

	form, err := svc.SaveProfile(context.Background(), identityFixture(), "Gopher", "XL_M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.DisplayName != "Gopher" || form.TeeShirtSize != "XL_M" {
		t.Errorf("unexpected form: %+v", form)
	}
	if repo.updates != 1 {
		t.Errorf("expected one update, got %d", repo.updates)
	}
}

func TestProfileService_SaveProfile_PartialUpdate(t *testing.T) {
	repo := newMockProfileRepo()
	repo.profiles["u1"] = &domain.Profile{
		UserID:       "u1",
		DisplayName:  "Existing",
		TeeShirtSize: domain.TeeShirtLM,
	}
	svc := NewProfileService(repo)

	// Empty fields leave the stored values in place.
	form, err := svc.SaveProfile(context.Background(), identityFixture(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.DisplayName != "Existing" || form.TeeShirtSize != "L_M" {
		t.Errorf("unexpected form: %+v", form)
	}
}

func TestProfileService_SaveProfile_InvalidSize(t *testing.T) {
	svc := NewProfileService(newMockProfileRepo())

	_, err := svc.SaveProfile(context.Background(), identityFixture(), "Gopher", "XL")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
