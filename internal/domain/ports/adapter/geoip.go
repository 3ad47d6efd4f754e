package adapter

import (
	"context"

	"universidad-sunshine/internal/domain/model"
)

// GeoIPDetector resolves the country for a visitor's IP. One lookup, no
// retries; any failure is returned as an error and the caller degrades to the
// registry default. The returned country may be outside the supported
// registry (ad-hoc country with placeholder flag).
type GeoIPDetector interface {
	Detect(ctx context.Context, ip string) (model.Country, error)
}
