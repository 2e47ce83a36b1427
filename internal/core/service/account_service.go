package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
)

// AccountService implements signup and login.
type AccountService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAccountService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, hasher: hasher, tokens: tokens, log: log}
}

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Signup registers a new account and returns its id.
func (s *AccountService) Signup(ctx context.Context, username, password string) (int64, error) {
	if err := validateInput(credentials{Username: username, Password: password}); err != nil {
		return 0, err
	}

	// Cheap pre-check to skip hashing; the unique index still decides races.
	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return 0, domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return 0, fmt.Errorf("signup: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("signup: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created.ID, nil
}

// Login verifies credentials and issues a session token.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	if err := validateInput(credentials{Username: username, Password: password}); err != nil {
		return "", err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserDoesNotExist
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrIncorrectPassword
	}

	token, err := s.tokens.Issue(ports.TokenClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return token, nil
}
