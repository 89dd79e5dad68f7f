package domain

import "time"

// Identity is the authenticated caller as asserted by the hosting platform's
// identity service. The API never manages credentials itself; it only verifies
// bearer tokens and trusts the claims inside.
type Identity struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// TokenVerifier verifies a bearer token and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// TokenIssuer issues tokens (e.g. JWT) for an identity. Used to mint
// development tokens in non-production environments.
type TokenIssuer interface {
	Issue(identity *Identity, expiry time.Duration) (string, error)
}
