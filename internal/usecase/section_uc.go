package usecase

import (
	"context"
	"strings"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
	"universidad-sunshine/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SectionUseCase = (*sectionUC)(nil)

type SectionInput struct {
	CategoryID  string   `json:"categoryId"`
	Name        string   `json:"sectionName"`
	Description string   `json:"sectionDescription"`
	Countries   []string `json:"countries"`
}

type SectionUseCase interface {
	Create(ctx context.Context, in SectionInput, actor string) (*model.Section, error)
	Update(ctx context.Context, id string, in SectionInput, actor string) (*model.Section, error)
	Delete(ctx context.Context, id string) error
	ListByCategory(ctx context.Context, categoryID string) ([]*model.Section, error)
}

type sectionUC struct {
	sections   repository.SectionRepository
	categories repository.CategoryRepository
	visibility VisibilityUseCase
	log        *zerolog.Logger
}

func NewSectionUseCase(sections repository.SectionRepository, categories repository.CategoryRepository, visibility VisibilityUseCase, logger *zerolog.Logger) *sectionUC {
	return &sectionUC{sections: sections, categories: categories, visibility: visibility, log: logger}
}

func (u *sectionUC) Create(ctx context.Context, in SectionInput, actor string) (*model.Section, error) {
	defer logging.TraceDuration(u.log, "SectionUC.Create")()

	// The owning category must exist before a section attaches to it.
	if _, err := u.categories.FindByID(ctx, repository.NoTX, in.CategoryID); err != nil {
		return nil, err
	}
	sec, err := model.NewSection("", in.CategoryID, in.Name, in.Description, in.Countries, actor)
	if err != nil {
		return nil, err
	}
	if err := u.sections.Save(ctx, repository.NoTX, sec); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return sec, nil
}

func (u *sectionUC) Update(ctx context.Context, id string, in SectionInput, actor string) (*model.Section, error) {
	defer logging.TraceDuration(u.log, "SectionUC.Update")()

	sec, err := u.sections.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	for _, code := range in.Countries {
		if !model.IsSupportedCountry(code) {
			return nil, domain.ErrUnsupportedCountry
		}
	}
	now := time.Now()
	sec.Name = strings.TrimSpace(in.Name)
	sec.Description = in.Description
	sec.Countries = in.Countries
	sec.UpdatedBy = actor
	sec.UpdatedAt = &now
	if err := u.sections.Save(ctx, repository.NoTX, sec); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return sec, nil
}

func (u *sectionUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "SectionUC.Delete")()

	if err := u.sections.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}

func (u *sectionUC) ListByCategory(ctx context.Context, categoryID string) ([]*model.Section, error) {
	return u.sections.ListByCategory(ctx, repository.NoTX, categoryID)
}

func (u *sectionUC) invalidate(ctx context.Context) {
	if u.visibility == nil {
		return
	}
	if err := u.visibility.InvalidateCache(ctx); err != nil {
		u.log.Warn().Err(err).Msg("public content cache invalidation failed")
	}
}
