package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/internal/users"
	pkgauth "github.com/ratewise/ratewise-backend/pkg/auth"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/security"
	"gorm.io/gorm"
)

// invalidCredentialsMessage is constant so responses never reveal whether the
// email or the password was wrong.
const invalidCredentialsMessage = "invalid email or password"

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type userCreator interface {
	Create(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error)
}

// SignupInput captures the public registration payload.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// ChangePasswordInput captures a password update for the authenticated user.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// Service exposes the identity operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*SessionDTO, error)
	Login(ctx context.Context, email, password string) (*SessionDTO, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}

type service struct {
	repo        userRepository
	creator     userCreator
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds the auth service. The users service handles creation so
// signup shares the admin path's policy checks and conflict mapping.
func NewService(repo userRepository, creator userCreator, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if creator == nil {
		return nil, fmt.Errorf("user creator required")
	}
	return &service{
		repo:        repo,
		creator:     creator,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Signup registers a normal user and returns a fresh session. The role is
// fixed server-side; there is no self-service path to any other role.
func (s *service) Signup(ctx context.Context, input SignupInput) (*SessionDTO, error) {
	created, err := s.creator.Create(ctx, users.CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Address:  input.Address,
		Role:     enums.RoleNormal,
	})
	if err != nil {
		return nil, err
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: created.ID,
		Role:   created.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &SessionDTO{
		Token: token,
		User: SessionUser{
			ID:      created.ID,
			Name:    created.Name,
			Email:   created.Email,
			Role:    created.Role,
			Address: created.Address,
		},
	}, nil
}

// Login verifies credentials and mints a session token.
func (s *service) Login(ctx context.Context, email, password string) (*SessionDTO, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &SessionDTO{Token: token, User: sessionUserFromModel(user)}, nil
}

// ChangePassword updates the caller's own password. The current password must
// verify before the new one is accepted.
func (s *service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		if isNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	if valid, reason := security.ValidatePasswordPolicy(input.NewPassword); !valid {
		return pkgerrors.New(pkgerrors.CodeValidation, reason)
	}

	hash, err := security.HashPassword(input.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
