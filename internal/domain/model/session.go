package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthSession is created at login and destroyed at logout or expiry. The
// session guard owns at most one timer pair (pre-expiry warning + periodic
// re-check) per session.
type AuthSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewAuthSession(userID, email, token string, expiresAt time.Time) *AuthSession {
	return &AuthSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func (s *AuthSession) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
