package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/domain/repository"
	pkgAuth "github.com/polkiloo/papermill/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new student account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	usr, err := u.create(ctx, login, password, model.RoleStudent)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves the actor a token was issued for.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// EnsureAdmin creates the administrator account unless login is already taken.
// It reports whether a new account was created.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	existing, err := u.users.GetByLogin(ctx, strings.TrimSpace(login))
	switch {
	case err == nil:
		if existing.Role != model.RoleAdmin {
			return false, domainErrors.ErrConflict
		}
		return false, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return false, err
	}

	if _, err := u.create(ctx, login, password, model.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (u *AuthUseCase) create(ctx context.Context, login, password string, role model.Role) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, login, hash, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return usr, nil
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(model.Actor{ID: usr.ID, Role: usr.Role})
}
