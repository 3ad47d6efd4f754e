package usecase

import (
	"context"
	"errors"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
	"universidad-sunshine/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ PrivacyUseCase = (*privacyUC)(nil)

// PolicyProvider supplies the localized privacy policy document.
type PolicyProvider interface {
	Policy() string
}

// PrivacyUseCase implements the per-country privacy gate. Acceptance is read
// fresh from the durable store on every decision so that concurrent tabs of
// the same visitor agree.
type PrivacyUseCase interface {
	Requires(code string) bool
	HasAccepted(ctx context.Context, visitorID, code string) (bool, error)
	NeedsPrompt(ctx context.Context, visitorID, code string) (bool, error)
	Accept(ctx context.Context, visitorID, code string) error
	// Reject records no acceptance; it forces the visitor's selection to the
	// fallback country and returns it.
	Reject(ctx context.Context, visitorID, code string) (model.Country, error)
	PolicyText() string
}

type privacyUC struct {
	required map[string]bool
	privacy  repository.PrivacyRepository
	visitors repository.VisitorStateRepository
	policy   PolicyProvider
	log      *zerolog.Logger
}

func NewPrivacyUseCase(requiredCountries []string, privacy repository.PrivacyRepository, visitors repository.VisitorStateRepository, policy PolicyProvider, logger *zerolog.Logger) *privacyUC {
	req := make(map[string]bool, len(requiredCountries))
	for _, c := range requiredCountries {
		req[c] = true
	}
	return &privacyUC{
		required: req,
		privacy:  privacy,
		visitors: visitors,
		policy:   policy,
		log:      logger,
	}
}

func (p *privacyUC) Requires(code string) bool { return p.required[code] }

func (p *privacyUC) HasAccepted(ctx context.Context, visitorID, code string) (bool, error) {
	rec, err := p.privacy.Get(ctx, visitorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return rec.HasAccepted(code), nil
}

func (p *privacyUC) NeedsPrompt(ctx context.Context, visitorID, code string) (bool, error) {
	if !p.Requires(code) {
		return false, nil
	}
	accepted, err := p.HasAccepted(ctx, visitorID, code)
	if err != nil {
		return false, err
	}
	return !accepted, nil
}

func (p *privacyUC) Accept(ctx context.Context, visitorID, code string) error {
	defer logging.TraceDuration(p.log, "PrivacyUC.Accept")()

	rec, err := p.privacy.Get(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		rec = model.NewPrivacyAcceptance(visitorID)
	}
	rec.Accept(code)
	return p.privacy.Save(ctx, rec)
}

func (p *privacyUC) Reject(ctx context.Context, visitorID, code string) (model.Country, error) {
	defer logging.TraceDuration(p.log, "PrivacyUC.Reject")()

	fallback := model.FallbackCountry()
	state, err := p.visitors.Get(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return model.Country{}, err
		}
		state = &model.VisitorState{
			VisitorID: visitorID,
			Detected:  fallback,
			Supported: true,
		}
	}
	state.Selected = fallback
	state.UpdatedAt = time.Now()
	if err := p.visitors.Save(ctx, state); err != nil {
		return model.Country{}, err
	}
	p.log.Info().Str("visitor_id", visitorID).Str("rejected_for", code).
		Str("fallback", fallback.Code).Msg("privacy policy rejected")
	return fallback, nil
}

func (p *privacyUC) PolicyText() string {
	if p.policy == nil {
		return ""
	}
	return p.policy.Policy()
}
