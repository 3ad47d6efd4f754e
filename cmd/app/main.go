// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"universidad-sunshine/internal/config"
	"universidad-sunshine/internal/domain/ports/adapter"
	"universidad-sunshine/internal/infra/auth"
	pg "universidad-sunshine/internal/infra/db/postgres"
	"universidad-sunshine/internal/infra/geoip"
	"universidad-sunshine/internal/infra/i18n"
	"universidad-sunshine/internal/infra/logging"
	red "universidad-sunshine/internal/infra/redis"
	"universidad-sunshine/internal/infra/sched"
	"universidad-sunshine/internal/infra/web"
	"universidad-sunshine/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, redacted fields in clear)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	// ---- Postgres ----
	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	if err := pg.Migrate(cfg.Database.URL); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect")
	}
	defer redisClient.Close()

	visitorRepo := red.NewVisitorStateRepo(redisClient, cfg.Redis.StateTTL, logger)
	privacyRepo := red.NewPrivacyRepo(redisClient, cfg.Redis.StateTTL, logger)
	sessionRepo := red.NewSessionRepo(redisClient)
	contentCache := red.NewContentCache(redisClient, cfg.Redis.CacheTTL)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	categoryRepo := pg.NewPostgresCategoryRepo(pool)
	sectionRepo := pg.NewPostgresSectionRepo(pool)
	contentRepo := pg.NewPostgresContentRepo(pool)

	// ---- GeoIP (HTTP first, local MMDB as fallback when configured) ----
	var detector adapter.GeoIPDetector = geoip.NewHTTPProvider(cfg.GeoIP.URL, logger)
	if cfg.GeoIP.MMDBPath != "" {
		mmdb, err := geoip.NewMMDBProvider(cfg.GeoIP.MMDBPath, "en")
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.GeoIP.MMDBPath).Msg("mmdb open")
		}
		defer mmdb.Close()
		detector = geoip.NewMultiProvider(logger, detector, mmdb)
	}

	// ---- Localization ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Privacy.Locale)
	if err != nil {
		logger.Fatal().Err(err).Str("locale", cfg.Privacy.Locale).Msg("translator")
	}

	// ---- Session guard ----
	notices := web.NewNoticeHub(translator)
	guard := sched.NewSessionGuard(sessionRepo, notices, cfg.Session.WarnLead, cfg.Session.CheckEvery, logger)
	defer guard.Shutdown()

	// ---- Use cases ----
	tokens := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	privacyUC := usecase.NewPrivacyUseCase(cfg.Privacy.RequiredCountries, privacyRepo, visitorRepo, translator, logger)
	countryUC := usecase.NewCountryUseCase(detector, visitorRepo, privacyUC, logger)
	visibilityUC := usecase.NewVisibilityUseCase(contentRepo, categoryRepo, sectionRepo, contentCache, logger)
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, tokens, rateLimiter, guard,
		cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWin, logger)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, visibilityUC, logger)
	sectionUC := usecase.NewSectionUseCase(sectionRepo, categoryRepo, visibilityUC, logger)
	contentUC := usecase.NewContentUseCase(contentRepo, sectionRepo, visibilityUC, logger)
	userUC := usecase.NewUserUseCase(userRepo, pg.NewTxManager(pool), logger)

	// ---- Upstream relay ----
	var relay *web.ProxyRelay
	if cfg.Upstream.BaseURL != "" {
		relay = web.NewProxyRelay(cfg.Upstream.BaseURL, cfg.Upstream.UploadURL, cfg.Upstream.Timeout, logger)
	}

	// ---- HTTP server ----
	srv := web.NewServer(countryUC, privacyUC, visibilityUC, authUC,
		categoryUC, sectionUC, contentUC, userUC,
		relay, notices, translator, cfg.Server.RequestTimeout, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
