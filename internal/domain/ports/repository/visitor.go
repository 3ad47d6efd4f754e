package repository

import (
	"context"

	"universidad-sunshine/internal/domain/model"
)

// VisitorStateRepository persists per-visitor country state. Reads must hit
// the durable store, not an in-memory snapshot, so that concurrent tabs of the
// same visitor see each other's writes (last writer wins).
type VisitorStateRepository interface {
	Get(ctx context.Context, visitorID string) (*model.VisitorState, error)
	Save(ctx context.Context, state *model.VisitorState) error
	Delete(ctx context.Context, visitorID string) error
}

// PrivacyRepository persists the per-country acceptance map. Accept is the
// only mutation that records a flag; rejection is handled at the use-case
// level by moving the selection to the fallback country.
type PrivacyRepository interface {
	Get(ctx context.Context, visitorID string) (*model.PrivacyAcceptance, error)
	Save(ctx context.Context, rec *model.PrivacyAcceptance) error
}

// SessionRepository stores live auth sessions keyed by session ID.
type SessionRepository interface {
	Save(ctx context.Context, s *model.AuthSession) error
	Get(ctx context.Context, sessionID string) (*model.AuthSession, error)
	Delete(ctx context.Context, sessionID string) error
}
