package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	// No transition reaches CANCELLED yet; the value exists so stored rows round-trip.
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsActive reports whether the status counts toward slot exclusivity.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusBooked || s == BookingStatusPending
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	ID          string        `json:"id"`
	FarmerID    string        `json:"farmer_id"`
	AssetID     string        `json:"asset_id"`
	BookingDate time.Time     `json:"booking_date"` // UTC midnight
	BookingTime string        `json:"booking_time"` // HH:MM
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// BookingDetail is a booking joined with the display names the clients render.
type BookingDetail struct {
	Booking
	FarmerName   string `json:"farmer_name"`
	AssetName    string `json:"asset_name"`
	AssetType    string `json:"asset_type"`
	OperatorID   string `json:"operator_id"`
	OperatorName string `json:"operator_name"`
}
