package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(geoipLookupsTotal) }

var geoipLookupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "geoip_lookups_total",
		Help: "GeoIP lookups by provider and result.",
	},
	[]string{"provider", "result"}, // e.g., provider="http", result="hit"|"miss"|"error"
)

func IncGeoIPLookup(provider, result string) {
	geoipLookupsTotal.WithLabelValues(norm(provider), norm(result)).Inc()
}
