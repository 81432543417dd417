package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgauth "github.com/kdhingra/meattrack-backend/pkg/auth"
	"github.com/kdhingra/meattrack-backend/pkg/config"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service handles account registration and login.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// RegisterInput captures a new account request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult returns the signed access token alongside the account.
type LoginResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

type service struct {
	repo        Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService wires a users service with the provided repository and config.
func NewService(repo Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking email")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.AccessTokenTTL()),
	}, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up user")
	}
	return user, nil
}
