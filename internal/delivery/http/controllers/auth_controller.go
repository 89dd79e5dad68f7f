package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

const devTokenExpiry = 24 * time.Hour

// DevTokenRequest is the request body for POST /auth/dev-token.
type DevTokenRequest struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Validate implements Validator.
func (d DevTokenRequest) Validate() []string {
	var errs []string
	if d.UserID == "" {
		errs = append(errs, "user_id is required")
	}
	if d.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(d.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// DevTokenResponse is the data payload for POST /auth/dev-token (200).
type DevTokenResponse struct {
	Token string `json:"token"`
}

// DevTokenSuccessResponse is the success response envelope for POST /auth/dev-token (200).
type DevTokenSuccessResponse struct {
	Data  DevTokenResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AuthController mints bearer tokens for local development. It is only
// mounted in non-production environments; production callers bring tokens
// from the platform identity service.
type AuthController struct {
	Logger *slog.Logger
	Issuer domain.TokenIssuer
}

func NewAuthController(logger *slog.Logger, issuer domain.TokenIssuer) *AuthController {
	return &AuthController{
		Logger: logger,
		Issuer: issuer,
	}
}

// IssueDevToken godoc
// @Summary Mint a development bearer token
// @Description Issues a 24h bearer token for the given identity. Available in non-production environments only.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body DevTokenRequest true "Identity to embed in the token"
// @Success 200 {object} controllers.DevTokenSuccessResponse "data contains the token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/dev-token [post]
func (c *AuthController) IssueDevToken(w http.ResponseWriter, r *http.Request) {
	var req DevTokenRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Issuer.Issue(&domain.Identity{
		UserID:      req.UserID,
		Email:       strings.TrimSpace(req.Email),
		DisplayName: req.DisplayName,
	}, devTokenExpiry)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DevTokenResponse{Token: token})
}
