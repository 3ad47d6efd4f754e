package usecase

import (
	"context"
	"errors"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/adapter"
	"universidad-sunshine/internal/domain/ports/repository"
	"universidad-sunshine/internal/infra/logging"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

// SessionWatcher arms the warning/re-check timer pair for a live session and
// tears it down on logout. One pair per session; Watch replaces any previous
// pair for the same ID.
type SessionWatcher interface {
	Watch(sessionID string, expiresAt time.Time)
	Cancel(sessionID string)
}

// LoginResult is the payload handed back after a successful login.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	SessionID string      `json:"sessionId"`
	User      *model.User `json:"user"`
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password, remoteIP string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// ValidateToken authenticates a bearer token for the admin surface: the
	// signature must verify and the backing session must still exist.
	ValidateToken(ctx context.Context, token string) (*adapter.TokenClaims, error)
	// DecodeClaims reads a signature-valid token without checking expiry or
	// the session store. The notice poller uses it so a just-expired session
	// can still collect its forced-logout notice.
	DecodeClaims(token string) (*adapter.TokenClaims, error)
	// IsExpired reads the token's self-describing expiry without verifying the
	// signature. Malformed tokens count as expired.
	IsExpired(token string, now time.Time) bool
}

type authUC struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tokens   adapter.TokenService
	limiter  adapter.RateLimiter
	watcher  SessionWatcher
	rateMax  int
	rateWin  time.Duration
	log      *zerolog.Logger
}

func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, tokens adapter.TokenService, limiter adapter.RateLimiter, watcher SessionWatcher, rateMax int, rateWin time.Duration, logger *zerolog.Logger) *authUC {
	return &authUC{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		limiter:  limiter,
		watcher:  watcher,
		rateMax:  rateMax,
		rateWin:  rateWin,
		log:      logger,
	}
}

func (u *authUC) Login(ctx context.Context, email, password, remoteIP string) (*LoginResult, error) {
	defer logging.TraceDuration(u.log, "AuthUC.Login")()

	if u.limiter != nil && remoteIP != "" {
		ok, err := u.limiter.Allow(ctx, "login:"+remoteIP, u.rateMax, u.rateWin)
		if err != nil {
			// Rate limiting is advisory; a broken limiter must not lock admins out.
			u.log.Warn().Err(err).Msg("login rate limiter unavailable")
		} else if !ok {
			return nil, domain.ErrRateLimited
		}
	}

	user, err := u.users.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	if !user.CanManageContent() {
		return nil, domain.ErrForbiddenRole
	}

	session := model.NewAuthSession(user.ID, user.Email, "", time.Time{})
	token, expiresAt, err := u.tokens.Mint(user, session.ID)
	if err != nil {
		return nil, err
	}
	session.Token = token
	session.ExpiresAt = expiresAt
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	if u.watcher != nil {
		u.watcher.Watch(session.ID, expiresAt)
	}

	u.log.Info().Str("user_id", user.ID).Str("email", logging.Redact(user.Email, false)).
		Str("session_id", session.ID).Msg("login succeeded")
	return &LoginResult{Token: token, ExpiresAt: expiresAt, SessionID: session.ID, User: user}, nil
}

func (u *authUC) Logout(ctx context.Context, sessionID string) error {
	defer logging.TraceDuration(u.log, "AuthUC.Logout")()

	if u.watcher != nil {
		u.watcher.Cancel(sessionID)
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (u *authUC) ValidateToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := u.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if _, err := u.sessions.Get(ctx, claims.SessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return claims, nil
}

func (u *authUC) DecodeClaims(token string) (*adapter.TokenClaims, error) {
	return u.tokens.DecodeClaims(token)
}

func (u *authUC) IsExpired(token string, now time.Time) bool {
	exp, err := u.tokens.DecodeExpiry(token)
	if err != nil {
		// Fail closed: a token we cannot read is treated as expired.
		return true
	}
	return !now.Before(exp)
}
