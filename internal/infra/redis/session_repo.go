package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo keeps live auth sessions. Each key expires with the token so a
// crashed guard cannot leave immortal sessions behind.
type SessionRepo struct {
	client RedisClient
}

func NewSessionRepo(client RedisClient) *SessionRepo {
	return &SessionRepo{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// sessionRecord is the stored shape; the token travels with the session here
// even though it is never serialized to API consumers.
type sessionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *SessionRepo) Save(ctx context.Context, s *model.AuthSession) error {
	rec := sessionRecord{
		ID: s.ID, UserID: s.UserID, Email: s.Email, Token: s.Token,
		ExpiresAt: s.ExpiresAt, CreatedAt: s.CreatedAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrTokenExpired
	}
	return r.client.Set(ctx, sessionKey(s.ID), data, ttl)
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*model.AuthSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if isNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &model.AuthSession{
		ID: rec.ID, UserID: rec.UserID, Email: rec.Email, Token: rec.Token,
		ExpiresAt: rec.ExpiresAt, CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID))
}
