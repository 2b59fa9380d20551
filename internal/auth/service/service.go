// Package service provides business logic layer for the auth module.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/communityhub/initiatives/internal/auth/model"
	"github.com/communityhub/initiatives/internal/auth/repository"
	"github.com/communityhub/initiatives/pkg/token"
)

// Service defines the interface for auth business logic operations.
type Service interface {
	// Register creates a new account and returns it with a signed token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login authenticates an account and returns it with a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

type service struct {
	repo   repository.Repository
	tokens *token.Manager
	logger *zap.SugaredLogger
}

// New creates a new auth service instance.
func New(repo repository.Repository, tokens *token.Manager, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a new account and returns it with a signed token.
func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Debugw("Register rejected", "username", username, "reason", "duplicate")
		return nil, model.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Register completed", "user_id", user.ID, "username", user.Username)
	return &model.AuthResponse{Token: signed, User: *user}, nil
}

// Login authenticates an account and returns it with a signed token.
func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debugw("Login rejected", "user_id", user.ID, "reason", "bad password")
		return nil, model.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Login completed", "user_id", user.ID)
	return &model.AuthResponse{Token: signed, User: *user}, nil
}
