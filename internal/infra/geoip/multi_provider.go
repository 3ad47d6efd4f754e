package geoip

import (
	"context"

	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.GeoIPDetector = (*MultiProvider)(nil)

// MultiProvider tries each detector in order and returns the first success.
// The caller decides what a total failure means (the country flow falls back
// to the default country).
type MultiProvider struct {
	providers []adapter.GeoIPDetector
	log       *zerolog.Logger
}

func NewMultiProvider(logger *zerolog.Logger, providers ...adapter.GeoIPDetector) *MultiProvider {
	return &MultiProvider{providers: providers, log: logger}
}

func (m *MultiProvider) Detect(ctx context.Context, ip string) (model.Country, error) {
	var lastErr error
	for _, p := range m.providers {
		c, err := p.Detect(ctx, ip)
		if err == nil {
			return c, nil
		}
		lastErr = err
		m.log.Debug().Err(err).Msg("geoip provider failed, trying next")
	}
	return model.Country{}, lastErr
}
