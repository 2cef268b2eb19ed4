package service

import (
	"context"
	"strings"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("user id is required")
	}
	return s.userRepo.GetByID(ctx, userID)
}
