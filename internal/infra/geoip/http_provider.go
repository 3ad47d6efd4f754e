package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/adapter"
	"universidad-sunshine/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ adapter.GeoIPDetector = (*HTTPProvider)(nil)

// HTTPProvider resolves the visitor's country against an ipapi.co-style JSON
// endpoint: GET {base}{ip}/json/ returns {"country": "MX", "country_name":
// "México"}; without an IP, GET {base}json/ resolves the caller's own address.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	log     *zerolog.Logger
}

func NewHTTPProvider(baseURL string, logger *zerolog.Logger) *HTTPProvider {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     logger,
	}
}

type ipapiResponse struct {
	Country     string `json:"country"`
	CountryName string `json:"country_name"`
}

func (p *HTTPProvider) Detect(ctx context.Context, ip string) (model.Country, error) {
	url := p.baseURL + "json/"
	if ip != "" {
		url = fmt.Sprintf("%s%s/json/", p.baseURL, ip)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Country{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.IncGeoIPLookup("http", "error")
		return model.Country{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.IncGeoIPLookup("http", "error")
		return model.Country{}, fmt.Errorf("geoip lookup: unexpected status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.IncGeoIPLookup("http", "error")
		return model.Country{}, fmt.Errorf("geoip lookup: decode: %w", err)
	}
	if body.Country == "" {
		metrics.IncGeoIPLookup("http", "miss")
		return model.Country{}, fmt.Errorf("geoip lookup: empty country")
	}

	if c, ok := model.FindCountry(body.Country); ok {
		metrics.IncGeoIPLookup("http", "hit")
		return c, nil
	}
	metrics.IncGeoIPLookup("http", "hit")
	return model.AdHocCountry(body.Country, body.CountryName), nil
}
