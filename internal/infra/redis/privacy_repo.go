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

var _ repository.PrivacyRepository = (*PrivacyRepo)(nil)

// PrivacyRepo stores the per-country acceptance map per visitor.
type PrivacyRepo struct {
	client RedisClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewPrivacyRepo(client RedisClient, ttl time.Duration, logger *zerolog.Logger) *PrivacyRepo {
	return &PrivacyRepo{client: client, ttl: ttl, log: logger}
}

func privacyKey(visitorID string) string {
	return fmt.Sprintf("privacy:%s", visitorID)
}

func (r *PrivacyRepo) Get(ctx context.Context, visitorID string) (*model.PrivacyAcceptance, error) {
	data, err := r.client.Get(ctx, privacyKey(visitorID))
	if err != nil {
		if isNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var rec model.PrivacyAcceptance
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		// Corrupt acceptance data re-prompts the visitor instead of failing.
		r.log.Warn().Err(err).Str("visitor_id", visitorID).Msg("discarding corrupt privacy acceptance")
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r *PrivacyRepo) Save(ctx context.Context, rec *model.PrivacyAcceptance) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, privacyKey(rec.VisitorID), data, r.ttl)
}
