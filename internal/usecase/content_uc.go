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
var _ ContentUseCase = (*contentUC)(nil)

type ContentInput struct {
	Title       string     `json:"contentTitle"`
	Author      string     `json:"author"`
	Description string     `json:"description"`
	CategoryID  string     `json:"categoryId"`
	SectionID   string     `json:"sectionId"`
	Subsection  string     `json:"subsection"`
	Type        string     `json:"contentType"`
	URL         string     `json:"contentUrl"`
	Size        string     `json:"size"`
	Countries   []string   `json:"availableCountries"`
	Status      string     `json:"status"`
	PublishedAt time.Time  `json:"publishedAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type ContentUseCase interface {
	Create(ctx context.Context, in ContentInput, actor string) (*model.ContentItem, error)
	Update(ctx context.Context, id string, in ContentInput, actor string) (*model.ContentItem, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.ContentItem, error)
	ListAll(ctx context.Context) ([]*model.ContentItem, error)
}

type contentUC struct {
	contents   repository.ContentRepository
	sections   repository.SectionRepository
	visibility VisibilityUseCase
	log        *zerolog.Logger
}

func NewContentUseCase(contents repository.ContentRepository, sections repository.SectionRepository, visibility VisibilityUseCase, logger *zerolog.Logger) *contentUC {
	return &contentUC{contents: contents, sections: sections, visibility: visibility, log: logger}
}

func (u *contentUC) Create(ctx context.Context, in ContentInput, actor string) (*model.ContentItem, error) {
	defer logging.TraceDuration(u.log, "ContentUC.Create")()

	sec, err := u.sections.FindByID(ctx, repository.NoTX, in.SectionID)
	if err != nil {
		return nil, err
	}
	if sec.CategoryID != in.CategoryID {
		return nil, domain.ErrInvalidArgument
	}
	if in.PublishedAt.IsZero() {
		in.PublishedAt = time.Now()
	}
	item, err := model.NewContentItem("", in.Title, in.CategoryID, in.SectionID,
		model.ContentType(in.Type), in.URL, in.Countries,
		model.ContentStatus(in.Status), in.PublishedAt, in.ExpiresAt, actor)
	if err != nil {
		return nil, err
	}
	item.Author = in.Author
	item.Description = in.Description
	item.Subsection = in.Subsection
	item.Size = in.Size
	if err := u.contents.Save(ctx, repository.NoTX, item); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return item, nil
}

func (u *contentUC) Update(ctx context.Context, id string, in ContentInput, actor string) (*model.ContentItem, error) {
	defer logging.TraceDuration(u.log, "ContentUC.Update")()

	item, err := u.contents.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrInvalidArgument
	}
	switch model.ContentType(in.Type) {
	case model.TypeVideo, model.TypeFile, model.TypeImage:
	default:
		return nil, domain.ErrInvalidArgument
	}
	switch model.ContentStatus(in.Status) {
	case model.StatusPublished, model.StatusDraft:
	default:
		return nil, domain.ErrInvalidArgument
	}
	for _, code := range in.Countries {
		if !model.IsSupportedCountry(code) {
			return nil, domain.ErrUnsupportedCountry
		}
	}
	if in.SectionID != item.SectionID || in.CategoryID != item.CategoryID {
		sec, err := u.sections.FindByID(ctx, repository.NoTX, in.SectionID)
		if err != nil {
			return nil, err
		}
		if sec.CategoryID != in.CategoryID {
			return nil, domain.ErrInvalidArgument
		}
	}
	if in.PublishedAt.IsZero() {
		in.PublishedAt = item.PublishedAt
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(in.PublishedAt) {
		return nil, domain.ErrInvalidArgument
	}

	now := time.Now()
	item.Title = strings.TrimSpace(in.Title)
	item.Author = in.Author
	item.Description = in.Description
	item.CategoryID = in.CategoryID
	item.SectionID = in.SectionID
	item.Subsection = in.Subsection
	item.Type = model.ContentType(in.Type)
	item.URL = in.URL
	item.Size = in.Size
	item.Countries = in.Countries
	item.Status = model.ContentStatus(in.Status)
	item.PublishedAt = in.PublishedAt
	item.ExpiresAt = in.ExpiresAt
	item.UpdatedBy = actor
	item.UpdatedAt = &now
	if err := u.contents.Save(ctx, repository.NoTX, item); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return item, nil
}

func (u *contentUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "ContentUC.Delete")()

	if err := u.contents.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}

func (u *contentUC) Get(ctx context.Context, id string) (*model.ContentItem, error) {
	return u.contents.FindByID(ctx, repository.NoTX, id)
}

func (u *contentUC) ListAll(ctx context.Context) ([]*model.ContentItem, error) {
	return u.contents.ListAll(ctx, repository.NoTX)
}

func (u *contentUC) invalidate(ctx context.Context) {
	if u.visibility == nil {
		return
	}
	if err := u.visibility.InvalidateCache(ctx); err != nil {
		u.log.Warn().Err(err).Msg("public content cache invalidation failed")
	}
}
