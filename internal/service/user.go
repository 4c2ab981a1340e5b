// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

type UserService struct {
	repo           *repository.UserRepository
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
}

func NewUserService(
	repo *repository.UserRepository,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *UserService {
	return &UserService{
		repo:           repo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
	}
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Signup registers a new user and signs them in
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashedPassword,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issue(user)
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetUser returns the user behind an authenticated request
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokenManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
