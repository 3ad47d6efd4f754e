package web

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"universidad-sunshine/internal/domain"

	"github.com/rs/zerolog"
)

// ProxyRelay forwards API calls to the upstream backend, keeping the
// upstream's address and credentials out of clients. Only the path travels in
// the query; the relay re-roots it under the configured base URL.
type ProxyRelay struct {
	baseURL   string
	uploadURL string
	client    *http.Client
	log       *zerolog.Logger
}

func NewProxyRelay(baseURL, uploadURL string, timeout time.Duration, logger *zerolog.Logger) *ProxyRelay {
	return &ProxyRelay{
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadURL: uploadURL,
		client:    &http.Client{Timeout: timeout},
		log:       logger,
	}
}

// hop-by-hop headers never forwarded in either direction.
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
	"Host":                true,
}

func copyHeaders(dst, src http.Header) {
	for k, vals := range src {
		if hopHeaders[http.CanonicalHeaderKey(k)] {
			continue
		}
		for _, v := range vals {
			dst.Add(k, v)
		}
	}
}

func (p *ProxyRelay) handleRelay(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondBadRequest(w, "path query parameter is required")
		return
	}
	// Reject anything trying to escape the upstream root.
	if strings.Contains(path, "..") || strings.Contains(path, "://") {
		respondBadRequest(w, "invalid path")
		return
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	// Forward the remaining query parameters except path itself.
	q := r.URL.Query()
	q.Del("path")
	target := p.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	if _, err := url.Parse(target); err != nil {
		respondBadRequest(w, "invalid path")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		respondErr(w, err)
		return
	}
	copyHeaders(req.Header, r.Header)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Str("target", path).Msg("upstream relay failed")
		respondErr(w, domain.ErrUpstreamUnavailable)
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.log.Warn().Err(err).Msg("relay body copy interrupted")
	}
}

func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	if s.relay == nil {
		s.respondUserErr(w, domain.ErrUpstreamUnavailable)
		return
	}
	s.relay.handleRelay(w, r)
}
