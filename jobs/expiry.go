package jobs

import (
	"log"
	"time"

	"mitrabus/database"
	"mitrabus/services"
)

// StartBookingExpiryScheduler sweeps pending bookings whose payment
// window lapsed. Expired bookings hold no funds, so the sweep is a
// status-only cancellation.
func StartBookingExpiryScheduler() {
	ticker := time.NewTicker(1 * time.Minute)
	go func() {
		for {
			<-ticker.C
			expired, err := services.ExpireStaleBookings(database.DB)
			if err != nil {
				log.Printf("❌ error expiring stale bookings: %v", err)
				continue
			}
			if expired > 0 {
				log.Printf("🕑 expired %d stale bookings", expired)
			}
		}
	}()
}
