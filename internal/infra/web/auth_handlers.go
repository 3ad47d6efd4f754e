package web

import (
	"encoding/json"
	"net/http"
	"time"

	"universidad-sunshine/internal/domain/ports/adapter"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	res, err := s.authUC.Login(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		s.respondUserErr(w, err)
		return
	}
	respondOK(w, "login successful", res)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, _ := r.Context().Value(claimsKey).(*adapter.TokenClaims)
	if claims == nil {
		respondBadRequest(w, "no session")
		return
	}
	if err := s.authUC.Logout(r.Context(), claims.SessionID); err != nil {
		respondErr(w, err)
		return
	}
	if s.notices != nil {
		s.notices.Drop(claims.SessionID)
	}
	respondOK(w, "logged out", nil)
}

// handleSessionNotices drains pending guard notices for the caller's session.
// Clients poll it to surface the pre-expiry warning and forced logout. It
// verifies the token signature itself instead of using authMiddleware: once
// the guard expires a session, the session lookup would reject the very
// request that needs to pick up the expired notice.
func (s *Server) handleSessionNotices(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respond(w, http.StatusUnauthorized, envelope{Success: false, Message: "missing bearer token"})
		return
	}
	claims, err := s.authUC.DecodeClaims(token)
	if err != nil {
		respondErr(w, err)
		return
	}
	var notices []Notice
	if s.notices != nil {
		notices = s.notices.Drain(claims.SessionID)
	}
	if len(notices) == 0 && s.authUC.IsExpired(token, time.Now()) {
		// The guard's notice may have been drained already or the process
		// restarted; the token itself says the session is over.
		notices = []Notice{{Kind: NoticeExpired, Message: s.tr.T("session_expired"), IssuedAt: time.Now()}}
	}
	respondOK(w, "session notices", notices)
}
