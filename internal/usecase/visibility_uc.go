package usecase

import (
	"context"
	"errors"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
	"universidad-sunshine/internal/infra/logging"
	"universidad-sunshine/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ VisibilityUseCase = (*visibilityUC)(nil)

// VisibleContent applies the item-level gates (published status, country
// membership, publish window) to a slice, preserving order. It is the loose
// filter; PublicContent layers section gating on top and is what every serving
// path uses.
func VisibleContent(items []*model.ContentItem, code string, now time.Time) []*model.ContentItem {
	out := make([]*model.ContentItem, 0, len(items))
	for _, it := range items {
		if it.VisibleTo(code, now) {
			out = append(out, it)
		}
	}
	return out
}

// PublicContentCache is a per-country snapshot cache in front of the database.
// Get returns domain.ErrNotFound on a miss.
type PublicContentCache interface {
	Get(ctx context.Context, code string) ([]*model.ContentWithRelations, error)
	Set(ctx context.Context, code string, items []*model.ContentWithRelations) error
	Invalidate(ctx context.Context) error
}

type VisibilityUseCase interface {
	// PublicContent returns the items a visitor in the given country may see,
	// newest first: published, within the publish window, the item lists the
	// country AND the owning section lists it too.
	PublicContent(ctx context.Context, code string) ([]*model.ContentWithRelations, error)
	// VisibleCategories returns categories that have at least one section
	// serving the country holding at least one item that passes the item
	// filters, each with only the serving sections attached.
	VisibleCategories(ctx context.Context, code string) ([]*model.CategoryWithSections, error)
	// InvalidateCache drops the per-country snapshots after an admin write.
	InvalidateCache(ctx context.Context) error
}

type visibilityUC struct {
	contents   repository.ContentRepository
	categories repository.CategoryRepository
	sections   repository.SectionRepository
	cache      PublicContentCache
	now        func() time.Time
	log        *zerolog.Logger
}

func NewVisibilityUseCase(contents repository.ContentRepository, categories repository.CategoryRepository, sections repository.SectionRepository, cache PublicContentCache, logger *zerolog.Logger) *visibilityUC {
	return &visibilityUC{
		contents:   contents,
		categories: categories,
		sections:   sections,
		cache:      cache,
		now:        time.Now,
		log:        logger,
	}
}

func (u *visibilityUC) PublicContent(ctx context.Context, code string) ([]*model.ContentWithRelations, error) {
	defer logging.TraceDuration(u.log, "VisibilityUC.PublicContent")()

	if !model.IsSupportedCountry(code) {
		return nil, domain.ErrUnsupportedCountry
	}

	if u.cache != nil {
		cached, err := u.cache.Get(ctx, code)
		switch {
		case err == nil:
			metrics.IncCacheRequest("public_content", "hit")
			metrics.IncPublicContentServed(code)
			return cached, nil
		case errors.Is(err, domain.ErrNotFound):
			metrics.IncCacheRequest("public_content", "miss")
		default:
			// A broken cache degrades to the database.
			u.log.Warn().Err(err).Str("country", code).Msg("public content cache read failed")
		}
	}

	all, err := u.contents.ListAllWithRelations(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	now := u.now()
	visible := make([]*model.ContentWithRelations, 0, len(all))
	for _, item := range all {
		if !item.VisibleTo(code, now) {
			continue
		}
		if !item.Section.ServesCountry(code) {
			continue
		}
		visible = append(visible, item)
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, code, visible); err != nil {
			u.log.Warn().Err(err).Str("country", code).Msg("public content cache write failed")
		}
	}
	metrics.IncPublicContentServed(code)
	return visible, nil
}

func (u *visibilityUC) VisibleCategories(ctx context.Context, code string) ([]*model.CategoryWithSections, error) {
	defer logging.TraceDuration(u.log, "VisibilityUC.VisibleCategories")()

	if !model.IsSupportedCountry(code) {
		return nil, domain.ErrUnsupportedCountry
	}

	cats, err := u.categories.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	secs, err := u.sections.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	items, err := u.contents.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}

	now := u.now()
	sectionHasItem := make(map[string]bool)
	for _, it := range items {
		if it.VisibleTo(code, now) {
			sectionHasItem[it.SectionID] = true
		}
	}

	byCategory := make(map[string][]*model.Section, len(cats))
	for _, s := range secs {
		if s.ServesCountry(code) {
			byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
		}
	}

	out := make([]*model.CategoryWithSections, 0, len(cats))
	for _, c := range cats {
		served := byCategory[c.ID]
		if len(served) == 0 {
			continue
		}
		// A category with serving sections but nothing to show in them stays
		// hidden.
		populated := false
		for _, s := range served {
			if sectionHasItem[s.ID] {
				populated = true
				break
			}
		}
		if !populated {
			continue
		}
		out = append(out, &model.CategoryWithSections{Category: *c, Sections: served})
	}
	return out, nil
}

func (u *visibilityUC) InvalidateCache(ctx context.Context) error {
	if u.cache == nil {
		return nil
	}
	return u.cache.Invalidate(ctx)
}
