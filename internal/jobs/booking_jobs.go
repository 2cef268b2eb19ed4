package jobs

import (
	"context"
	"time"

	"dhara-backend/internal/logger"
)

const expireBookingsTimeout = 2 * time.Minute

// ExpireBookings completes BOOKED bookings dated before today and returns
// their assets to the available pool.
func (jr *JobRunner) ExpireBookings() error {
	return jr.runWithRecovery("ExpireBookings", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), expireBookingsTimeout)
		defer cancel()

		n, err := jr.services.Booking.RefreshBookingStatuses(ctx)
		if err != nil {
			return err
		}
		logger.Info("Expired bookings", "count", n)
		return nil
	})
}
