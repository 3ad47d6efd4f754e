package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ repository.VisitorStateRepository = (*VisitorStateRepo)(nil)

// VisitorStateRepo stores per-visitor country state in Redis. The long TTL
// stands in for durable client-side storage; every read hits Redis so that
// concurrent tabs of the same visitor agree.
type VisitorStateRepo struct {
	client RedisClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewVisitorStateRepo(client RedisClient, ttl time.Duration, logger *zerolog.Logger) *VisitorStateRepo {
	return &VisitorStateRepo{client: client, ttl: ttl, log: logger}
}

func visitorKey(visitorID string) string {
	return fmt.Sprintf("visitor:%s", visitorID)
}

func (r *VisitorStateRepo) Get(ctx context.Context, visitorID string) (*model.VisitorState, error) {
	data, err := r.client.Get(ctx, visitorKey(visitorID))
	if err != nil {
		if isNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var state model.VisitorState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		// Corrupt state is unrecoverable; treat it as absent so the caller
		// falls back to a fresh resolution.
		r.log.Warn().Err(err).Str("visitor_id", visitorID).Msg("discarding corrupt visitor state")
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

func (r *VisitorStateRepo) Save(ctx context.Context, state *model.VisitorState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, visitorKey(state.VisitorID), data, r.ttl)
}

func (r *VisitorStateRepo) Delete(ctx context.Context, visitorID string) error {
	return r.client.Del(ctx, visitorKey(visitorID))
}
