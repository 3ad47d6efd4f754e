package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"universidad-sunshine/internal/domain"
)

// envelope is the uniform response shape: {"success": ..., "message": ...,
// "data": ...}. Every endpoint, error paths included, speaks it.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func respondOK(w http.ResponseWriter, message string, data interface{}) {
	respond(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data interface{}) {
	respond(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondErr(w http.ResponseWriter, err error) {
	respond(w, statusFor(err), envelope{Success: false, Message: err.Error()})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respond(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}

// respondUserErr is respondErr with the message run through the locale
// catalog. The portal shows these verbatim; the admin surface keeps raw
// error text.
func (s *Server) respondUserErr(w http.ResponseWriter, err error) {
	respond(w, statusFor(err), envelope{Success: false, Message: s.userMessage(err)})
}

func (s *Server) userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return s.tr.T("login_failed")
	case errors.Is(err, domain.ErrInactiveUser):
		return s.tr.T("login_inactive")
	case errors.Is(err, domain.ErrRateLimited):
		return s.tr.T("login_rate_limited")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return s.tr.T("upstream_unavailable")
	default:
		return err.Error()
	}
}

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnsupportedCountry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrMalformedToken), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbiddenRole), errors.Is(err, domain.ErrInactiveUser):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
