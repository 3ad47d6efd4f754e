package model

import (
	"crypto/rand"
	"strings"
	"time"

	"universidad-sunshine/internal/domain"

	"github.com/oklog/ulid/v2"
)

type ContentStatus string

const (
	StatusPublished ContentStatus = "Published"
	StatusDraft     ContentStatus = "Draft"
)

type ContentType string

const (
	TypeVideo ContentType = "Video"
	TypeFile  ContentType = "File"
	TypeImage ContentType = "Image"
)

// ContentItem is the unit of published material. The backing store is the
// system of record; API consumers only cache snapshots.
//
// IDs are ULIDs so that listing by ID is also reverse-insertable; repositories
// still order by created_at DESC explicitly.
type ContentItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"contentTitle"`
	Author      string        `json:"author"`
	Description string        `json:"description"`
	CategoryID  string        `json:"categoryId"`
	SectionID   string        `json:"sectionId"`
	Subsection  string        `json:"subsection,omitempty"`
	Type        ContentType   `json:"contentType"`
	URL         string        `json:"contentUrl"`
	Size        string        `json:"size,omitempty"`
	Countries   []string      `json:"availableCountries"`
	Status      ContentStatus `json:"status"`
	PublishedAt time.Time     `json:"publishedAt"`
	ExpiresAt   *time.Time    `json:"expiresAt,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedBy   string        `json:"updatedBy,omitempty"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

func NewContentItem(id, title, categoryID, sectionID string, ctype ContentType, url string, countries []string, status ContentStatus, publishedAt time.Time, expiresAt *time.Time, createdBy string) (*ContentItem, error) {
	if id == "" {
		id = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	}
	if strings.TrimSpace(title) == "" || categoryID == "" || sectionID == "" {
		return nil, domain.ErrInvalidArgument
	}
	switch ctype {
	case TypeVideo, TypeFile, TypeImage:
	default:
		return nil, domain.ErrInvalidArgument
	}
	switch status {
	case StatusPublished, StatusDraft:
	default:
		return nil, domain.ErrInvalidArgument
	}
	for _, code := range countries {
		if !IsSupportedCountry(code) {
			return nil, domain.ErrUnsupportedCountry
		}
	}
	if expiresAt != nil && !expiresAt.After(publishedAt) {
		return nil, domain.ErrInvalidArgument
	}
	return &ContentItem{
		ID:          id,
		Title:       strings.TrimSpace(title),
		CategoryID:  categoryID,
		SectionID:   sectionID,
		Type:        ctype,
		URL:         url,
		Countries:   countries,
		Status:      status,
		PublishedAt: publishedAt,
		ExpiresAt:   expiresAt,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}, nil
}

// ActiveAt reports whether the publish window contains now: publishedAt has
// passed and the expiry, when set, has not been reached. The expiry bound is
// exclusive: an item expiring exactly at now is no longer active.
func (c *ContentItem) ActiveAt(now time.Time) bool {
	if c.PublishedAt.After(now) {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return true
}

// AvailableIn reports whether the item's country list includes the code.
func (c *ContentItem) AvailableIn(code string) bool {
	for _, cc := range c.Countries {
		if cc == code {
			return true
		}
	}
	return false
}

// VisibleTo combines the three item-level gates: published status, country
// membership and publish window. Section-level gating is layered on top by the
// visibility use case.
func (c *ContentItem) VisibleTo(code string, now time.Time) bool {
	return c.Status == StatusPublished && c.AvailableIn(code) && c.ActiveAt(now)
}

// ContentWithRelations embeds the owning category and section the way the
// public content endpoint serves items.
type ContentWithRelations struct {
	ContentItem
	Category Category `json:"category"`
	Section  Section  `json:"section"`
}
