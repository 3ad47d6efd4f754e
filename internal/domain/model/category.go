package model

import (
	"strings"
	"time"

	"universidad-sunshine/internal/domain"

	"github.com/google/uuid"
)

// CategoryIcon is a closed set of icon identifiers. Icon selection used to be
// stringly-typed with a runtime "not found" fallback; the enum removes that
// path entirely.
type CategoryIcon string

const (
	IconBook      CategoryIcon = "book"
	IconBriefcase CategoryIcon = "briefcase"
	IconHeart     CategoryIcon = "heart"
	IconLeaf      CategoryIcon = "leaf"
	IconStar      CategoryIcon = "star"
	IconUsers     CategoryIcon = "users"
	IconVideo     CategoryIcon = "video"
	IconGlobe     CategoryIcon = "globe"
)

// ParseCategoryIcon maps an icon name to the enum. Unknown names are an
// argument error, never a silent fallback.
func ParseCategoryIcon(s string) (CategoryIcon, error) {
	switch CategoryIcon(strings.ToLower(strings.TrimSpace(s))) {
	case IconBook:
		return IconBook, nil
	case IconBriefcase:
		return IconBriefcase, nil
	case IconHeart:
		return IconHeart, nil
	case IconLeaf:
		return IconLeaf, nil
	case IconStar:
		return IconStar, nil
	case IconUsers:
		return IconUsers, nil
	case IconVideo:
		return IconVideo, nil
	case IconGlobe:
		return IconGlobe, nil
	default:
		return "", domain.ErrInvalidArgument
	}
}

// Category groups sections; it has no country list of its own. Whether a
// category is visible for a country is derived from its sections and content.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"categoryName"`
	Description string       `json:"description"`
	Icon        CategoryIcon `json:"categoryIcon"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedBy   string       `json:"updatedBy,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

func NewCategory(id, name, description, icon, createdBy string) (*Category, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	ic, err := ParseCategoryIcon(icon)
	if err != nil {
		return nil, err
	}
	return &Category{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: description,
		Icon:        ic,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}, nil
}

// Section belongs to one category and carries its own country list. A section
// assigned to a country can still have zero visible items; category visibility
// accounts for that.
type Section struct {
	ID          string     `json:"id"`
	CategoryID  string     `json:"categoryId"`
	Name        string     `json:"sectionName"`
	Description string     `json:"sectionDescription"`
	Countries   []string   `json:"countries"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func NewSection(id, categoryID, name, description string, countries []string, createdBy string) (*Section, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if categoryID == "" || strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	for _, code := range countries {
		if !IsSupportedCountry(code) {
			return nil, domain.ErrUnsupportedCountry
		}
	}
	return &Section{
		ID:          id,
		CategoryID:  categoryID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Countries:   countries,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}, nil
}

// CategoryWithSections is a category plus the subset of its sections serving a
// particular country, the shape the public catalog endpoint returns.
type CategoryWithSections struct {
	Category
	Sections []*Section `json:"sections"`
}

// ServesCountry reports whether the section lists the country.
func (s *Section) ServesCountry(code string) bool {
	for _, c := range s.Countries {
		if c == code {
			return true
		}
	}
	return false
}
