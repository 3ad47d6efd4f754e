package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"universidad-sunshine/internal/config"
	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
	pg "universidad-sunshine/internal/infra/db/postgres"
	"universidad-sunshine/internal/infra/logging"
	"universidad-sunshine/internal/usecase"

	"github.com/rs/zerolog"
)

func main() {
	// ---- Config ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	adminEmail := flag.String("admin-email", "admin@sunshine.example", "initial admin account")
	adminPassword := flag.String("admin-password", "", "initial admin password (required on first run)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.Migrate(cfg.Database.URL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	nop := zerolog.Nop()
	logger := &nop
	userRepo := pg.NewPostgresUserRepo(pool)
	categoryRepo := pg.NewPostgresCategoryRepo(pool)
	sectionRepo := pg.NewPostgresSectionRepo(pool)
	contentRepo := pg.NewPostgresContentRepo(pool)

	userUC := usecase.NewUserUseCase(userRepo, pg.NewTxManager(pool), logger)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, nil, logger)
	sectionUC := usecase.NewSectionUseCase(sectionRepo, categoryRepo, nil, logger)
	contentUC := usecase.NewContentUseCase(contentRepo, sectionRepo, nil, logger)

	// ---- Admin account ----
	admin, err := seedAdmin(ctx, userUC, userRepo, *adminEmail, *adminPassword)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	fmt.Printf("admin: %s\n", logging.Redact(admin.Email, cfg.Runtime.Dev))

	// ---- Demo catalog ----
	cats, err := categoryUC.ListAll(ctx)
	if err != nil {
		log.Fatalf("list categories: %v", err)
	}
	if len(cats) > 0 {
		fmt.Printf("%d categories already present. No changes.\n", len(cats))
		return
	}

	allCodes := make([]string, 0, 8)
	for _, c := range model.SupportedCountries() {
		allCodes = append(allCodes, c.Code)
	}

	actor := admin.Email
	cat, err := categoryUC.Create(ctx, usecase.CategoryInput{
		Name:        "Bienestar",
		Description: "Recursos de salud y bienestar para toda la región",
		Icon:        "heart",
	}, actor)
	if err != nil {
		log.Fatalf("create category: %v", err)
	}

	sec, err := sectionUC.Create(ctx, usecase.SectionInput{
		CategoryID:  cat.ID,
		Name:        "Nutrición",
		Description: "Guías alimentarias por país",
		Countries:   allCodes,
	}, actor)
	if err != nil {
		log.Fatalf("create section: %v", err)
	}

	item, err := contentUC.Create(ctx, usecase.ContentInput{
		Title:      "Guía de alimentación saludable",
		CategoryID: cat.ID,
		SectionID:  sec.ID,
		Type:       string(model.TypeVideo),
		URL:        "https://cdn.sunshine.example/videos/guia-alimentacion.mp4",
		Countries:  allCodes,
		Status:     string(model.StatusPublished),
	}, actor)
	if err != nil {
		log.Fatalf("create content: %v", err)
	}

	fmt.Printf("seeded: category=%s section=%s content=%s\n", cat.ID, sec.ID, item.ID)
	fmt.Println("Seeding complete.")
}

func seedAdmin(ctx context.Context, uc usecase.UserUseCase, repo repository.UserRepository, email, password string) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, repository.NoTX, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("-admin-password is required on first run")
	}
	return uc.Create(ctx, usecase.UserInput{
		Email:    email,
		Password: password,
		Roles:    []string{model.RoleAdmin},
	})
}
