package web

import (
	"encoding/json"
	"net/http"

	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/usecase"
)

func (s *Server) handleVisitorInitialize(w http.ResponseWriter, r *http.Request) {
	res, err := s.countryUC.Initialize(r.Context(), visitorID(r), clientIP(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	msg := "initialized"
	switch {
	case res.RequireSelection:
		msg = s.tr.T("country_unsupported_body")
	case res.ShowMismatchAlert:
		msg = s.tr.T("country_mismatch_alert", res.Detected.Name, res.Selected.Name)
	}
	respondOK(w, msg, res)
}

type selectCountryRequest struct {
	CountryCode string `json:"countryCode"`
	Origin      string `json:"origin"`
}

func (s *Server) handleVisitorSelectCountry(w http.ResponseWriter, r *http.Request) {
	var req selectCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	origin := req.Origin
	if origin != usecase.OriginUnsupportedFlow {
		origin = usecase.OriginSwitcher
	}
	res, err := s.countryUC.SetSelected(r.Context(), visitorID(r), req.CountryCode, origin)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "country selected", res)
}

func (s *Server) handleVisitorDismissAlert(w http.ResponseWriter, r *http.Request) {
	if err := s.countryUC.DismissAlert(r.Context(), visitorID(r)); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "alert dismissed", nil)
}

func (s *Server) handleVisitorCountries(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, "supported countries", model.SupportedCountries())
}

func (s *Server) handleVisitorCatalog(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("countryCode")
	cats, err := s.visibility.VisibleCategories(r.Context(), code)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "catalog", cats)
}

func (s *Server) handlePublicContent(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("countryCode")
	if code == "" {
		respondBadRequest(w, "countryCode query parameter is required")
		return
	}
	items, err := s.visibility.PublicContent(r.Context(), code)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "public content", items)
}

func (s *Server) handlePrivacyPolicy(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, "privacy policy", map[string]string{"policy": s.privacyUC.PolicyText()})
}

type privacyRequest struct {
	CountryCode string `json:"countryCode"`
}

func (s *Server) handlePrivacyAccept(w http.ResponseWriter, r *http.Request) {
	var req privacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := s.privacyUC.Accept(r.Context(), visitorID(r), req.CountryCode); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "privacy accepted", nil)
}

func (s *Server) handlePrivacyReject(w http.ResponseWriter, r *http.Request) {
	var req privacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	fallback, err := s.privacyUC.Reject(r.Context(), visitorID(r), req.CountryCode)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, s.tr.T("privacy_rejected_notice", fallback.Name), map[string]interface{}{"fallbackCountry": fallback})
}
