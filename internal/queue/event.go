// Package queue carries booking events between the API server and the
// notifier worker over RabbitMQ.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"dhara-backend/internal/domain"

	"github.com/google/uuid"
)

// BookingCreatedQueue is the durable queue booking events are routed to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published once a booking is committed. It carries
// the display fields the notifier needs so it only has to look up the
// operator's email address.
type BookingCreatedEvent struct {
	EventID      string `json:"event_id"`
	BookingID    string `json:"booking_id"`
	AssetID      string `json:"asset_id"`
	AssetName    string `json:"asset_name"`
	FarmerID     string `json:"farmer_id"`
	FarmerName   string `json:"farmer_name"`
	OperatorID   string `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	CreatedAt    string `json:"created_at"`
}

func NewBookingCreatedEvent(b *domain.BookingDetail) BookingCreatedEvent {
	return BookingCreatedEvent{
		EventID:      uuid.NewString(),
		BookingID:    b.ID,
		AssetID:      b.AssetID,
		AssetName:    b.AssetName,
		FarmerID:     b.FarmerID,
		FarmerName:   b.FarmerName,
		OperatorID:   b.OperatorID,
		OperatorName: b.OperatorName,
		BookingDate:  b.BookingDate.UTC().Format("2006-01-02"),
		BookingTime:  b.BookingTime,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func DecodeBookingCreated(body []byte) (BookingCreatedEvent, error) {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal booking event: %w", err)
	}
	if ev.BookingID == "" || ev.OperatorID == "" {
		return ev, fmt.Errorf("booking event missing booking or operator id")
	}
	return ev, nil
}
