package usecase

import (
	"context"
	"strings"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
	"universidad-sunshine/internal/infra/logging"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

type UserInput struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
	Countries  []string `json:"countries"`
	Categories []string `json:"accesibleCategories"`
	IsActive   *bool    `json:"isActive"`
}

type UserUseCase interface {
	Create(ctx context.Context, in UserInput) (*model.User, error)
	// Update patches the account; a blank password keeps the current hash.
	Update(ctx context.Context, id string, in UserInput) (*model.User, error)
	DeleteByEmail(ctx context.Context, email string) error
	ListAll(ctx context.Context) ([]*model.User, error)
}

type userUC struct {
	users repository.UserRepository
	txm   repository.TransactionManager
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, txm repository.TransactionManager, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, txm: txm, log: logger}
}

// inTx runs fn transactionally when a manager is wired; repositories backed by
// other stores pass NoTX through.
func (u *userUC) inTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if u.txm == nil {
		return fn(ctx, repository.NoTX)
	}
	return u.txm.WithTx(ctx, pgx.TxOptions{}, fn)
}

func (u *userUC) Create(ctx context.Context, in UserInput) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Create")()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := model.NewUser("", in.Name, email, string(hash), in.Roles, in.Countries, in.Categories)
	if err != nil {
		return nil, err
	}
	err = u.inTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := u.users.FindByEmail(ctx, tx, email); err == nil {
			return domain.ErrAlreadyExists
		}
		return u.users.Save(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", user.ID).Str("email", logging.Redact(user.Email, false)).Msg("user created")
	return user, nil
}

func (u *userUC) Update(ctx context.Context, id string, in UserInput) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Update")()

	user, err := u.users.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	for _, r := range in.Roles {
		if r != model.RoleAdmin && r != model.RoleContentManager {
			return nil, domain.ErrInvalidArgument
		}
	}
	for _, code := range in.Countries {
		if !model.IsSupportedCountry(code) {
			return nil, domain.ErrUnsupportedCountry
		}
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if len(in.Roles) > 0 {
		user.Roles = in.Roles
	}
	if len(in.Countries) > 0 {
		user.Countries = in.Countries
	}
	if in.Categories != nil {
		user.AccessibleCategories = in.Categories
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	now := time.Now()
	user.UpdatedAt = &now
	if err := u.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUC) DeleteByEmail(ctx context.Context, email string) error {
	defer logging.TraceDuration(u.log, "UserUC.Delete")()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.ErrInvalidArgument
	}
	return u.users.DeleteByEmail(ctx, repository.NoTX, email)
}

func (u *userUC) ListAll(ctx context.Context) ([]*model.User, error) {
	return u.users.ListAll(ctx, repository.NoTX)
}
