package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// fakeProfileService implements domain.ProfileService for handler tests.
type fakeProfileService struct {
	getErr             error
	getResult          *domain.ProfileForm
	saveErr            error
	saveResult         *domain.ProfileForm
	lastDisplayName    string
	lastTeeShirtSize   string
	lastIdentityUserID string
}

func (f *fakeProfileService) GetProfile(ctx context.Context, identity *domain.Identity) (*domain.ProfileForm, error) {
	f.lastIdentityUserID = identity.UserID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeProfileService) SaveProfile(ctx context.Context, identity *domain.Identity, displayName, teeShirtSize string) (*domain.ProfileForm, error) {
	f.lastIdentityUserID = identity.UserID
	f.lastDisplayName = displayName
	f.lastTeeShirtSize = teeShirtSize
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.saveResult, nil
}

func TestProfileController_GetProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeProfileService{getResult: &domain.ProfileForm{
			UserID:       "user-123",
			DisplayName:  "Gopher",
			TeeShirtSize: "NOT_SPECIFIED",
		}}
		ctrl := NewProfileController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req = req.WithContext(middleware.SetIdentity(req.Context(), testIdentity()))
		rr := httptest.NewRecorder()

		ctrl.GetProfile(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-123", fake.lastIdentityUserID)
		assert.Contains(t, rr.Body.String(), "Gopher")
	})

	t.Run("no identity maps to 401", func(t *testing.T) {
		ctrl := NewProfileController(testLogger, &fakeProfileService{})
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rr := httptest.NewRecorder()

		ctrl.GetProfile(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProfileController_SaveProfile(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatus     int
		wantBodySubstr string
		noIdentity     bool
	}{
		{
			name:       "success",
			body:       `{"display_name":"Gopher","tee_shirt_size":"XL_M"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty body keeps stored values",
			body:       `{}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "unknown tee shirt size",
			body:           `{"tee_shirt_size":"XL"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "tee_shirt_size",
		},
		{
			name:           "no identity in context",
			body:           `{"display_name":"Gopher"}`,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
			noIdentity:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProfileService{saveResult: &domain.ProfileForm{UserID: "user-123"}}
			ctrl := NewProfileController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/profile", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noIdentity {
				req = req.WithContext(middleware.SetIdentity(req.Context(), testIdentity()))
			}
			rr := httptest.NewRecorder()

			ctrl.SaveProfile(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
			} else if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}
