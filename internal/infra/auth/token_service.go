package auth

import (
	"errors"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/adapter"

	"github.com/golang-jwt/jwt/v5"
)

var _ adapter.TokenService = (*JWTService)(nil)

// JWTService mints and verifies HS256 bearer tokens for the admin surface.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

type sessionClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *JWTService) Mint(u *model.User, sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Email:     u.Email,
		Role:      u.PrimaryRole(),
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *JWTService) Verify(tok string) (*adapter.TokenClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrMalformedToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrMalformedToken
	}
	if !tkn.Valid {
		return nil, domain.ErrMalformedToken
	}
	return &adapter.TokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// DecodeClaims verifies the signature but skips claim validation, so an
// expired token still yields its claims. Lets the notice poller match a dead
// session to its queued expiry notice.
func (s *JWTService) DecodeClaims(tok string) (*adapter.TokenClaims, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	tkn, err := parser.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrMalformedToken
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrMalformedToken
	}
	out := &adapter.TokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SessionID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// DecodeExpiry reads the exp claim without verifying the signature. Callers
// use it for proactive expiry checks only, never for authentication; anything
// unreadable fails closed as malformed.
func (s *JWTService) DecodeExpiry(tok string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return time.Time{}, domain.ErrMalformedToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, domain.ErrMalformedToken
	}
	return claims.ExpiresAt.Time, nil
}
