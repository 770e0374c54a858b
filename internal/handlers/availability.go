package handlers

import (
	"time"

	"github.com/driveline/rental-backend/internal/models"
	"gorm.io/gorm"
)

// rangesOverlap reports whether two closed date intervals intersect.
// Boundaries are inclusive: ranges that merely touch at an endpoint
// conflict, since handover happens within the day.
func rangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !end1.Before(start2)
}

// IsVehicleAvailable reports whether no non-cancelled booking on the
// vehicle overlaps [start, end]. excludeBookingID removes that booking from
// consideration when re-validating an edit; pass 0 otherwise. A vehicle
// with no bookings (or an unknown vehicle) is available; existence checks
// are the caller's job.
func IsVehicleAvailable(db *gorm.DB, vehicleID uint, start, end time.Time, excludeBookingID uint) (bool, error) {
	query := db.Model(&models.Booking{}).
		Where("vehicle_id = ? AND status <> ?", vehicleID, models.BookingStatusCancelled).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeBookingID != 0 {
		query = query.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
