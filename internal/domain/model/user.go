package model

import (
	"strings"
	"time"

	"universidad-sunshine/internal/domain"

	"github.com/google/uuid"
)

const (
	RoleAdmin          = "Admin"
	RoleContentManager = "ContentManager"
)

// AllowedRoles is the closed set of roles an account may carry.
var AllowedRoles = []string{RoleAdmin, RoleContentManager}

// User is an admin-panel account. PasswordHash is bcrypt and never serialized.
type User struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	Roles                []string   `json:"roles"`
	Countries            []string   `json:"countries"`
	AccessibleCategories []string   `json:"accesibleCategories"`
	IsActive             bool       `json:"isActive"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

func NewUser(id, name, email, passwordHash string, roles, countries, categories []string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	for _, r := range roles {
		if !roleAllowed(r) {
			return nil, domain.ErrInvalidArgument
		}
	}
	if len(countries) == 0 {
		for _, c := range SupportedCountries() {
			countries = append(countries, c.Code)
		}
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	return &User{
		ID:                   id,
		Name:                 name,
		Email:                email,
		PasswordHash:         passwordHash,
		Roles:                roles,
		Countries:            countries,
		AccessibleCategories: categories,
		IsActive:             true,
		CreatedAt:            time.Now(),
	}, nil
}

func roleAllowed(role string) bool {
	for _, r := range AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// HasRole reports membership of a single role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanManageContent is the login gate: the account needs Admin or
// ContentManager.
func (u *User) CanManageContent() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleContentManager)
}

// PrimaryRole resolves the single role shown in the admin UI; Admin wins.
func (u *User) PrimaryRole() string {
	if u.HasRole(RoleAdmin) {
		return RoleAdmin
	}
	return RoleContentManager
}
