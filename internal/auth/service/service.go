// Package service implements staff login and account creation.
package service

import (
	"context"
	"errors"
	"time"

	"framtt_backend/internal/auth/password"
	"framtt_backend/internal/auth/repository"
	"framtt_backend/internal/auth/transport"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/config"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/sanitize"

	"github.com/google/uuid"
)

const msgInvalidCredentials = "invalid credentials"

type Service struct {
	repo repository.UserRepository
	cfg  config.AuthConfig
	log  *logger.Logger
	now  func() time.Time
}

func New(repo repository.UserRepository, cfg config.AuthConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.TokenResponse, error) {
	email := sanitize.Email(req.Email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("login", email, false, "unknown email")
			return transport.TokenResponse{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return transport.TokenResponse{}, err
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		reason := "wrong password"
		if !errors.Is(err, password.ErrMismatch) {
			reason = "unreadable password hash"
		}
		s.log.AuthEvent("login", email, false, reason)
		return transport.TokenResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, err := httpkit.IssueAccessToken(s.cfg, user.ID, []string{user.Role}, s.now())
	if err != nil {
		return transport.TokenResponse{}, apperr.Wrap(apperr.KindInternal, "issue access token", err)
	}

	s.log.AuthEvent("login", email, true, "")
	return transport.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.GetAccessTokenTTL().Seconds()),
	}, nil
}

// CreateUser stores a staff account with a bcrypt password hash.
func (s *Service) CreateUser(ctx context.Context, req transport.CreateUserRequest) (transport.ProfileResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.ProfileResponse{}, err
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        sanitize.Email(req.Email),
		PasswordHash: hash,
		Name:         sanitize.TextPtr(req.Name),
		Role:         req.Role,
	})
	if err != nil {
		return transport.ProfileResponse{}, err
	}

	s.log.Info("user created", "id", user.ID, "role", user.Role)
	return toProfile(user), nil
}

// Me returns the profile behind a JWT subject.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return toProfile(user), nil
}

func toProfile(user repository.User) transport.ProfileResponse {
	return transport.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
