package geoip

import (
	"context"
	"fmt"
	"net"

	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/adapter"
	"universidad-sunshine/internal/infra/metrics"

	"github.com/oschwald/geoip2-golang"
)

var _ adapter.GeoIPDetector = (*MMDBProvider)(nil)

// MMDBProvider resolves countries from a local GeoLite2 database. It needs no
// network round-trip and serves as the fallback when the HTTP provider is
// unreachable.
type MMDBProvider struct {
	reader *geoip2.Reader
	locale string
}

func NewMMDBProvider(path, locale string) (*MMDBProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mmdb: %w", err)
	}
	if locale == "" {
		locale = "es"
	}
	return &MMDBProvider{reader: reader, locale: locale}, nil
}

func (p *MMDBProvider) Detect(_ context.Context, ip string) (model.Country, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		metrics.IncGeoIPLookup("mmdb", "error")
		return model.Country{}, fmt.Errorf("geoip mmdb: invalid ip %q", ip)
	}
	rec, err := p.reader.Country(parsed)
	if err != nil {
		metrics.IncGeoIPLookup("mmdb", "error")
		return model.Country{}, err
	}
	code := rec.Country.IsoCode
	if code == "" {
		metrics.IncGeoIPLookup("mmdb", "miss")
		return model.Country{}, fmt.Errorf("geoip mmdb: no country for %s", ip)
	}
	if c, ok := model.FindCountry(code); ok {
		metrics.IncGeoIPLookup("mmdb", "hit")
		return c, nil
	}
	name := rec.Country.Names[p.locale]
	if name == "" {
		name = rec.Country.Names["en"]
	}
	metrics.IncGeoIPLookup("mmdb", "hit")
	return model.AdHocCountry(code, name), nil
}

func (p *MMDBProvider) Close() error { return p.reader.Close() }
