package web

import (
	"errors"
	"io"
	"net/http"

	"universidad-sunshine/internal/domain"
)

// maxUploadBytes caps multipart uploads forwarded to the upstream.
const maxUploadBytes = 20 << 20 // 20 MiB

// handleUpload streams a multipart upload to the upstream's upload endpoint.
// The size cap is enforced here so oversized bodies are cut off before they
// cross the wire.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.relay == nil || s.relay.uploadURL == "" {
		s.respondUserErr(w, domain.ErrUpstreamUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.relay.uploadURL, r.Body)
	if err != nil {
		respondErr(w, err)
		return
	}
	copyHeaders(req.Header, r.Header)

	resp, err := s.relay.client.Do(req)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond(w, http.StatusRequestEntityTooLarge, envelope{Success: false, Message: s.tr.T("upload_too_large")})
			return
		}
		s.log.Warn().Err(err).Msg("upload relay failed")
		s.respondUserErr(w, domain.ErrUpstreamUnavailable)
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.log.Warn().Err(err).Msg("upload response copy interrupted")
	}
}
