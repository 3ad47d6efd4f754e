package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"universidad-sunshine/internal/infra/i18n"
	"universidad-sunshine/internal/infra/logging"
	"universidad-sunshine/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type ctxKey string

const claimsKey ctxKey = "auth_claims"

type Server struct {
	countryUC  usecase.CountryUseCase
	privacyUC  usecase.PrivacyUseCase
	visibility usecase.VisibilityUseCase
	authUC     usecase.AuthUseCase
	categoryUC usecase.CategoryUseCase
	sectionUC  usecase.SectionUseCase
	contentUC  usecase.ContentUseCase
	userUC     usecase.UserUseCase

	relay   *ProxyRelay
	notices *NoticeHub
	tr      *i18n.Translator
	timeout time.Duration
	log     *zerolog.Logger
}

func NewServer(
	countryUC usecase.CountryUseCase,
	privacyUC usecase.PrivacyUseCase,
	visibility usecase.VisibilityUseCase,
	authUC usecase.AuthUseCase,
	categoryUC usecase.CategoryUseCase,
	sectionUC usecase.SectionUseCase,
	contentUC usecase.ContentUseCase,
	userUC usecase.UserUseCase,
	relay *ProxyRelay,
	notices *NoticeHub,
	translator *i18n.Translator,
	requestTimeout time.Duration,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		countryUC:  countryUC,
		privacyUC:  privacyUC,
		visibility: visibility,
		authUC:     authUC,
		categoryUC: categoryUC,
		sectionUC:  sectionUC,
		contentUC:  contentUC,
		userUC:     userUC,
		relay:      relay,
		notices:    notices,
		tr:         translator,
		timeout:    requestTimeout,
		log:        logger,
	}
}

// Routes builds the full router: the public portal surface, the visitor state
// surface, the authenticated admin API and the operational endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(traceMiddleware)
	r.Use(recoverMiddleware(s.log))
	r.Use(middleware.Timeout(s.timeout))
	r.Use(requestLogMiddleware(s.log))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/public-content", s.handlePublicContent)
		r.Post("/Auth/login", s.handleLogin)
		// Outside authMiddleware: an already-expired token must still be able
		// to collect its forced-logout notice. The handler checks the
		// signature itself.
		r.Get("/Auth/session-notices", s.handleSessionNotices)

		r.Route("/v1/visitor", func(r chi.Router) {
			r.Use(requireVisitor)
			r.Post("/initialize", s.handleVisitorInitialize)
			r.Post("/country", s.handleVisitorSelectCountry)
			r.Post("/dismiss-alert", s.handleVisitorDismissAlert)
			r.Get("/countries", s.handleVisitorCountries)
			r.Get("/catalog", s.handleVisitorCatalog)
			r.Get("/privacy/policy", s.handlePrivacyPolicy)
			r.Post("/privacy/accept", s.handlePrivacyAccept)
			r.Post("/privacy/reject", s.handlePrivacyReject)
		})

		// Everything below needs a verified bearer token with a live session.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/Auth/logout", s.handleLogout)

			r.Get("/Categories/all", s.handleCategoriesAll)
			r.Post("/Categories/create", s.handleCategoryCreate)
			r.Put("/Categories/update/{id}", s.handleCategoryUpdate)
			r.Delete("/Categories", s.handleCategoryDelete)

			r.Get("/Section/by-category/{id}", s.handleSectionsByCategory)
			r.Post("/Section/create", s.handleSectionCreate)
			r.Put("/Section/update/{id}", s.handleSectionUpdate)
			r.Delete("/Section/delete/{id}", s.handleSectionDelete)

			r.Get("/Content/all", s.handleContentAll)
			r.Post("/Content/create", s.handleContentCreate)
			r.Put("/Content/update/{id}", s.handleContentUpdate)
			r.Get("/Content/{id}", s.handleContentGet)
			r.Delete("/Content/{id}", s.handleContentDelete)

			r.Get("/User", s.handleUsersAll)
			r.Post("/User/create", s.handleUserCreate)
			r.Put("/User/update/{id}", s.handleUserUpdate)
			r.Delete("/User/delete", s.handleUserDelete)

			r.HandleFunc("/proxy", s.handleProxy)
			r.Post("/upload", s.handleUpload)
		})
	})

	return r
}

// bearerToken extracts the token from the Authorization header, or "" when
// the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	if hdr == "" || !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		return ""
	}
	return strings.TrimSpace(hdr[7:])
}

// authMiddleware verifies the bearer token and checks the backing session is
// still alive, then stashes the claims for handlers.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respond(w, http.StatusUnauthorized, envelope{Success: false, Message: "missing bearer token"})
			return
		}
		claims, err := s.authUC.ValidateToken(r.Context(), token)
		if err != nil {
			respondErr(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = logging.WithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, "ok", nil)
}
