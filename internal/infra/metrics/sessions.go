package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(sessionsExpiredTotal, sessionsActive) }

var sessionsExpiredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sessions_expired_total",
		Help: "Sessions ended by the guard, by trigger.",
	},
	[]string{"trigger"}, // "immediate"|"warning"|"recheck"
)

var sessionsActive = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Sessions currently watched by the guard.",
	},
)

func IncSessionExpired(trigger string) {
	sessionsExpiredTotal.WithLabelValues(norm(trigger)).Inc()
}

func SetActiveSessions(n int) { sessionsActive.Set(float64(n)) }
