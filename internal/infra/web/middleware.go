package web

import (
	"net"
	"net/http"
	"strings"
	"time"

	"universidad-sunshine/internal/infra/logging"
	"universidad-sunshine/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const visitorIDHeader = "X-Visitor-ID"

// traceMiddleware assigns a request trace ID and stores it in the context for
// the logging helpers.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx := logging.WithTraceID(r.Context(), traceID)
		if vid := r.Header.Get(visitorIDHeader); vid != "" {
			ctx = logging.WithVisitorID(ctx, vid)
		}
		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogMiddleware logs one line per request and feeds the HTTP metrics,
// labeled by the chi route pattern rather than the raw path.
func requestLogMiddleware(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), elapsed.Seconds())

			logging.With(r.Context(), logger).Info().
				Str("method", r.Method).
				Str("route", route).
				Int("status", ww.Status()).
				Dur("duration", elapsed).
				Msg("request")
		})
	}
}

// recoverMiddleware turns panics into enveloped 500s.
func recoverMiddleware(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
					respond(w, http.StatusInternalServerError, envelope{Success: false, Message: "internal error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requireVisitor rejects visitor-surface requests without an X-Visitor-ID.
func requireVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(visitorIDHeader) == "" {
			respondBadRequest(w, "missing "+visitorIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func visitorID(r *http.Request) string {
	return r.Header.Get(visitorIDHeader)
}

// clientIP prefers the usual proxy headers over RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
