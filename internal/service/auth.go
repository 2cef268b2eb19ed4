package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/repository"
	"dhara-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	cost     int
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name, role, village string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", invalidInput("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, "", invalidInput("password must be at least %d characters", minPasswordLength)
	}

	r := domain.RoleFarmer
	if strings.TrimSpace(role) != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return nil, "", invalidInput("role: %v", err)
		}
		r = parsed
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: email already registered", repository.ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         r,
		Village:      strings.TrimSpace(village),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	logger.Info("User registered", "userID", user.ID, "role", user.Role)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", invalidInput("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
