package domain

import "time"

type NotificationType string

const (
	NotificationTypeBooking     NotificationType = "BOOKING"
	NotificationTypeMaintenance NotificationType = "MAINTENANCE"
	NotificationTypeInfo        NotificationType = "INFO"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
