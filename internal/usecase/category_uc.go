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
var _ CategoryUseCase = (*categoryUC)(nil)

// CategoryInput is the admin-panel payload for creating or updating a
// category.
type CategoryInput struct {
	Name        string `json:"categoryName"`
	Description string `json:"description"`
	Icon        string `json:"categoryIcon"`
}

type CategoryUseCase interface {
	Create(ctx context.Context, in CategoryInput, actor string) (*model.Category, error)
	Update(ctx context.Context, id string, in CategoryInput, actor string) (*model.Category, error)
	// Delete removes the category; section rows cascade in the database.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*model.Category, error)
}

type categoryUC struct {
	categories repository.CategoryRepository
	visibility VisibilityUseCase
	log        *zerolog.Logger
}

func NewCategoryUseCase(categories repository.CategoryRepository, visibility VisibilityUseCase, logger *zerolog.Logger) *categoryUC {
	return &categoryUC{categories: categories, visibility: visibility, log: logger}
}

func (u *categoryUC) Create(ctx context.Context, in CategoryInput, actor string) (*model.Category, error) {
	defer logging.TraceDuration(u.log, "CategoryUC.Create")()

	cat, err := model.NewCategory("", in.Name, in.Description, in.Icon, actor)
	if err != nil {
		return nil, err
	}
	if err := u.categories.Save(ctx, repository.NoTX, cat); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return cat, nil
}

func (u *categoryUC) Update(ctx context.Context, id string, in CategoryInput, actor string) (*model.Category, error) {
	defer logging.TraceDuration(u.log, "CategoryUC.Update")()

	cat, err := u.categories.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	icon, err := model.ParseCategoryIcon(in.Icon)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	cat.Name = strings.TrimSpace(in.Name)
	cat.Description = in.Description
	cat.Icon = icon
	cat.UpdatedBy = actor
	cat.UpdatedAt = &now
	if err := u.categories.Save(ctx, repository.NoTX, cat); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return cat, nil
}

func (u *categoryUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "CategoryUC.Delete")()

	if err := u.categories.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}

func (u *categoryUC) ListAll(ctx context.Context) ([]*model.Category, error) {
	return u.categories.ListAll(ctx, repository.NoTX)
}

func (u *categoryUC) invalidate(ctx context.Context) {
	if u.visibility == nil {
		return
	}
	if err := u.visibility.InvalidateCache(ctx); err != nil {
		u.log.Warn().Err(err).Msg("public content cache invalidation failed")
	}
}
