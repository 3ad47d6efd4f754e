package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(publicContentServedTotal, countrySelectionsTotal) }

var publicContentServedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "public_content_served_total",
		Help: "Public content responses by country.",
	},
	[]string{"country"},
)

var countrySelectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "country_selections_total",
		Help: "Explicit country selections by origin of the change.",
	},
	[]string{"country", "origin"}, // origin="switcher"|"unsupported_flow"|"privacy_reject"
)

func IncPublicContentServed(country string) {
	publicContentServedTotal.WithLabelValues(norm(country)).Inc()
}

func IncCountrySelection(country, origin string) {
	countrySelectionsTotal.WithLabelValues(norm(country), norm(origin)).Inc()
}
