package repository

import (
	"context"

	"universidad-sunshine/internal/domain/model"
)

// -----------------------------
// Categories
// -----------------------------

type CategoryRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Category) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Category, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Category, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

// -----------------------------
// Sections
// -----------------------------

type SectionRepository interface {
	Save(ctx context.Context, tx Tx, s *model.Section) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Section, error)
	ListByCategory(ctx context.Context, tx Tx, categoryID string) ([]*model.Section, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Section, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

// -----------------------------
// Content items
// -----------------------------

type ContentRepository interface {
	Save(ctx context.Context, tx Tx, c *model.ContentItem) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.ContentItem, error)
	// ListAll returns items newest first (created_at DESC). Downstream filters
	// preserve that order.
	ListAll(ctx context.Context, tx Tx) ([]*model.ContentItem, error)
	// ListAllWithRelations embeds each item's category and section, newest
	// first, for the public content surface.
	ListAllWithRelations(ctx context.Context, tx Tx) ([]*model.ContentWithRelations, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
