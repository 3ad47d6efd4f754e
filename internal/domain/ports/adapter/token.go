package adapter

import (
	"time"

	"universidad-sunshine/internal/domain/model"
)

// TokenClaims is the decoded view of an auth token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// TokenService mints and reads bearer tokens. Verify checks signature and
// expiry and is what request authentication uses. DecodeClaims checks the
// signature but tolerates an expired token, so the notice poller can still
// identify the session after forced logout. DecodeExpiry reads the
// self-describing expiry claim without signature verification (trust-the-
// backend model, not a security boundary).
type TokenService interface {
	Mint(u *model.User, sessionID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*TokenClaims, error)
	DecodeClaims(token string) (*TokenClaims, error)
	DecodeExpiry(token string) (time.Time, error)
}
