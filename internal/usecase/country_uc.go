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
	"universidad-sunshine/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ CountryUseCase = (*countryUC)(nil)

// Selection origins recorded in metrics.
const (
	OriginSwitcher        = "switcher"
	OriginUnsupportedFlow = "unsupported_flow"
)

// Resolution is the country state handed to the portal after initialization
// or an explicit change. RequireSelection (unsupported flow) and
// ShowMismatchAlert are mutually exclusive.
type Resolution struct {
	Detected          model.Country `json:"detected"`
	Selected          model.Country `json:"selected"`
	Supported         bool          `json:"supported"`
	ShowMismatchAlert bool          `json:"showMismatchAlert"`
	RequireSelection  bool          `json:"requireSelection"`
	RequirePrivacy    bool          `json:"requirePrivacy"`
}

type CountryUseCase interface {
	// Initialize runs the session-start flow: detect, validate support,
	// reconcile with the persisted selection, evaluate the privacy gate.
	Initialize(ctx context.Context, visitorID, ip string) (*Resolution, error)
	// SetSelected applies an explicit choice (country switcher or the
	// unsupported-country modal), persists it and dismisses the alert.
	SetSelected(ctx context.Context, visitorID, code, origin string) (*Resolution, error)
	DismissAlert(ctx context.Context, visitorID string) error
}

type countryUC struct {
	geo      adapter.GeoIPDetector
	visitors repository.VisitorStateRepository
	privacy  PrivacyUseCase
	log      *zerolog.Logger
}

func NewCountryUseCase(geo adapter.GeoIPDetector, visitors repository.VisitorStateRepository, privacy PrivacyUseCase, logger *zerolog.Logger) *countryUC {
	return &countryUC{
		geo:      geo,
		visitors: visitors,
		privacy:  privacy,
		log:      logger,
	}
}

func (u *countryUC) Initialize(ctx context.Context, visitorID, ip string) (*Resolution, error) {
	defer logging.TraceDuration(u.log, "CountryUC.Initialize")()

	detected, err := u.geo.Detect(ctx, ip)
	if err != nil {
		// Detection failure never blocks the portal.
		u.log.Warn().Err(err).Msg("geo detection failed, using default country")
		detected = model.DefaultCountry()
	}
	supported := model.IsSupportedCountry(detected.Code)

	stored, err := u.visitors.Get(ctx, visitorID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hasStored := err == nil

	res := &Resolution{Detected: detected, Supported: supported}

	if !supported {
		// Unsupported flow: an explicit choice is required before content
		// loads; the mismatch alert never shows alongside it. Nothing is
		// persisted until the visitor picks.
		res.RequireSelection = true
		if hasStored {
			res.Selected = stored.Selected
		} else {
			res.Selected = model.DefaultCountry()
		}
	} else if hasStored {
		res.Selected = stored.Selected
		res.ShowMismatchAlert = stored.Selected.Code != detected.Code

		// A new session re-arms the one-shot alert and refreshes detection.
		stored.Detected = detected
		stored.Supported = true
		stored.AlertDismissed = false
		stored.UpdatedAt = time.Now()
		if err := u.visitors.Save(ctx, stored); err != nil {
			return nil, err
		}
	} else {
		// First run: the detected country becomes the selection.
		res.Selected = detected
		state := &model.VisitorState{
			VisitorID: visitorID,
			Detected:  detected,
			Selected:  detected,
			Supported: true,
			UpdatedAt: time.Now(),
		}
		if err := u.visitors.Save(ctx, state); err != nil {
			return nil, err
		}
	}

	need, err := u.privacy.NeedsPrompt(ctx, visitorID, res.Selected.Code)
	if err != nil {
		return nil, err
	}
	res.RequirePrivacy = need
	return res, nil
}

func (u *countryUC) SetSelected(ctx context.Context, visitorID, code, origin string) (*Resolution, error) {
	defer logging.TraceDuration(u.log, "CountryUC.SetSelected")()

	country, ok := model.FindCountry(code)
	if !ok {
		return nil, domain.ErrUnsupportedCountry
	}

	state, err := u.visitors.Get(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		state = &model.VisitorState{VisitorID: visitorID, Detected: country, Supported: true}
	}
	state.Selected = country
	state.AlertDismissed = true
	state.UpdatedAt = time.Now()
	if err := u.visitors.Save(ctx, state); err != nil {
		return nil, err
	}
	metrics.IncCountrySelection(country.Code, origin)

	need, err := u.privacy.NeedsPrompt(ctx, visitorID, country.Code)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		Detected:       state.Detected,
		Selected:       country,
		Supported:      model.IsSupportedCountry(state.Detected.Code),
		RequirePrivacy: need,
	}, nil
}

func (u *countryUC) DismissAlert(ctx context.Context, visitorID string) error {
	state, err := u.visitors.Get(ctx, visitorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if state.AlertDismissed {
		return nil
	}
	state.AlertDismissed = true
	state.UpdatedAt = time.Now()
	return u.visitors.Save(ctx, state)
}
