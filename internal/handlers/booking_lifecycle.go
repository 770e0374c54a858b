package handlers

import (
	"context"
	"time"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/driveline/rental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// releaseDriver flips an assigned driver back to available within the
// surrounding transaction.
func releaseDriver(tx *gorm.DB, driverID *uint) error {
	if driverID == nil {
		return nil
	}
	return tx.Model(&models.Driver{}).Where("id = ?", *driverID).
		Update("available", true).Error
}

// CancelBooking cancels an active booking
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Reason string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if !models.CanTransition(booking.Status, models.BookingStatusCancelled) {
			c.JSON(400, gin.H{"error": "Only active bookings can be cancelled"})
			return
		}

		now := time.Now()
		booking.Status = models.BookingStatusCancelled
		booking.CancelReason = input.Reason
		booking.CancelledAt = &now
		booking.CancelledByID = &userId

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			return releaseDriver(tx, booking.DriverID)
		})
		if err != nil {
			logrus.WithError(err).Error("booking cancellation failed")
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		ctx := context.Background()
		if booking.DriverID != nil {
			services.SetDriverAvailability(ctx, *booking.DriverID, true)
		}
		services.InvalidateDashboardCache(ctx)
		hub.BroadcastBookingEvent("booking_cancelled", services.BookingEvent{
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			DriverID:  booking.DriverID,
			Status:    string(booking.Status),
			ActorID:   userId,
		})

		// The refund figure is informational; no funds move here.
		c.JSON(200, gin.H{
			"booking":      booking,
			"billing":      utils.ComputeBilling(booking.TotalBill, booking.DiscountPercentage, booking.AdvancePaid),
			"refundAmount": booking.AdvancePaid,
		})
	}
}

// CompleteBooking ends an active booking and settles its final bill
func CompleteBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			EndTime                  string  `json:"endTime" binding:"required"`
			FinalMeterReading        float64 `json:"finalMeterReading" binding:"required"`
			AdditionalCharges        float64 `json:"additionalCharges"`
			RemainingPaymentReceived float64 `json:"remainingPaymentReceived"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if !models.CanTransition(booking.Status, models.BookingStatusCompleted) {
			c.JSON(400, gin.H{"error": "Only active bookings can be completed"})
			return
		}

		if input.FinalMeterReading < booking.MeterReading {
			c.JSON(400, gin.H{"error": "Final meter reading cannot be less than initial meter reading"})
			return
		}
		if input.AdditionalCharges < 0 || input.RemainingPaymentReceived < 0 {
			c.JSON(400, gin.H{"error": "Charges and payments must be non-negative"})
			return
		}

		billing := utils.ComputeCompletionBilling(
			booking.TotalBill,
			input.AdditionalCharges,
			booking.DiscountPercentage,
			booking.AdvancePaid,
			input.RemainingPaymentReceived,
		)

		now := time.Now()
		booking.Status = models.BookingStatusCompleted
		booking.EndTime = input.EndTime
		booking.FinalMeterReading = &input.FinalMeterReading
		booking.AdditionalCharges = input.AdditionalCharges
		booking.RemainingPaymentReceived = input.RemainingPaymentReceived
		booking.FinalTotalBill = billing.UpdatedTotalBill
		booking.FinalRemainingBalance = billing.FinalRemainingBalance
		booking.CompletedAt = &now
		booking.CompletedByID = &userId

		if err := booking.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			return releaseDriver(tx, booking.DriverID)
		})
		if err != nil {
			logrus.WithError(err).Error("booking completion failed")
			c.JSON(500, gin.H{"error": "Failed to complete booking"})
			return
		}

		ctx := context.Background()
		if booking.DriverID != nil {
			services.SetDriverAvailability(ctx, *booking.DriverID, true)
		}
		services.InvalidateDashboardCache(ctx)
		hub.BroadcastBookingEvent("booking_completed", services.BookingEvent{
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			DriverID:  booking.DriverID,
			Status:    string(booking.Status),
			ActorID:   userId,
		})

		c.JSON(200, gin.H{
			"booking": booking,
			"billing": billing,
		})
	}
}
