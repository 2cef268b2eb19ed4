package service

import (
	"context"
	"strings"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Notify(ctx context.Context, userID, message string, typ domain.NotificationType) error {
	if userID == "" || strings.TrimSpace(message) == "" {
		return invalidInput("notification needs a user and a message")
	}
	if typ == "" {
		typ = domain.NotificationTypeInfo
	}
	return s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Message: message,
		Type:    typ,
	})
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.noteRepo.List(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
