package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/driveline/rental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var (
	errDateConflict   = errors.New("vehicle is already booked for the selected dates")
	errDriverConflict = errors.New("driver is already assigned to another booking")
)

// claimDriver marks a driver unavailable, failing if another booking got
// there first. The availability precondition runs inside the surrounding
// transaction so concurrent claims cannot both succeed.
func claimDriver(tx *gorm.DB, driverID uint) error {
	res := tx.Model(&models.Driver{}).
		Where("id = ? AND available = ?", driverID, true).
		Update("available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errDriverConflict
	}
	return nil
}

// sameDriver reports whether two driver assignments refer to the same
// driver, treating nil as unassigned.
func sameDriver(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// pickCustomer resolves the natural-key lookup when phone and CNIC could
// match different records: the phone match wins and the CNIC match is left
// untouched.
func pickCustomer(byPhone, byCNIC *models.Customer) *models.Customer {
	if byPhone != nil {
		return byPhone
	}
	return byCNIC
}

// findOrCreateCustomer upserts a customer by phone-or-CNIC, bumping the
// booking counters and refreshing the name on every hit.
func findOrCreateCustomer(tx *gorm.DB, name, phone, cnic string, now time.Time) (*models.Customer, error) {
	var byPhone, byCNIC *models.Customer

	var phoneMatch models.Customer
	if err := tx.Where("phone_number = ?", phone).First(&phoneMatch).Error; err == nil {
		byPhone = &phoneMatch
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var cnicMatch models.Customer
	if err := tx.Where("cnic = ?", cnic).First(&cnicMatch).Error; err == nil {
		byCNIC = &cnicMatch
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := pickCustomer(byPhone, byCNIC)
	if customer == nil {
		customer = &models.Customer{
			FullName:        name,
			PhoneNumber:     phone,
			CNIC:            cnic,
			BookingCount:    1,
			LastBookingDate: &now,
		}
		if err := tx.Create(customer).Error; err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer.FullName = name
	customer.BookingCount++
	customer.LastBookingDate = &now
	if err := tx.Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateBooking handles the creation of a new booking
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		var input struct {
			VehicleID             uint    `json:"vehicleId" binding:"required"`
			DriverID              *uint   `json:"driverId"`
			DriverPreference      string  `json:"driverPreference" binding:"required,oneof=driver self"`
			CustomerLicenseNumber string  `json:"customerLicenseNumber"`
			TripType              string  `json:"tripType" binding:"required,oneof=withincity outofcity"`
			DestinationCity       string  `json:"destinationCity"`
			StartDate             string  `json:"startDate" binding:"required"`
			EndDate               string  `json:"endDate" binding:"required"`
			StartTime             string  `json:"startTime" binding:"required"`
			MeterReading          float64 `json:"meterReading"`
			TotalBill             float64 `json:"totalBill"`
			AdvancePaid           float64 `json:"advancePaid"`
			DiscountPercentage    float64 `json:"discountPercentage"`
			DiscountReference     string  `json:"discountReference"`
			CustomerName          string  `json:"customerName" binding:"required"`
			CustomerPhone         string  `json:"customerPhone" binding:"required"`
			CustomerCNIC          string  `json:"customerCnic" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		startDate, err := time.Parse(dateLayout, input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "startDate must be in YYYY-MM-DD format"})
			return
		}
		endDate, err := time.Parse(dateLayout, input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "endDate must be in YYYY-MM-DD format"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, input.VehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}
		if vehicle.Deleted {
			c.JSON(400, gin.H{"error": "Vehicle is no longer in service"})
			return
		}

		if input.DriverPreference == string(models.DriverPreferenceDriver) {
			if input.DriverID == nil {
				c.JSON(400, gin.H{"error": "driverId is required when a company driver is preferred"})
				return
			}
			var driver models.Driver
			if err := db.First(&driver, *input.DriverID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Driver not found"})
				return
			}
			if !driver.Active {
				c.JSON(400, gin.H{"error": "Driver is deactivated"})
				return
			}
			if !driver.Available {
				c.JSON(409, gin.H{"error": "Driver is already assigned to another booking"})
				return
			}
		} else {
			input.DriverID = nil
			if input.CustomerLicenseNumber == "" {
				c.JSON(400, gin.H{"error": "customerLicenseNumber is required for self-drive bookings"})
				return
			}
		}

		available, err := IsVehicleAvailable(db, input.VehicleID, startDate, endDate, 0)
		if err != nil {
			logrus.WithError(err).Error("availability check failed")
			c.JSON(500, gin.H{"error": "Failed to check vehicle availability"})
			return
		}
		if !available {
			c.JSON(409, gin.H{"error": errDateConflict.Error()})
			return
		}

		booking := models.Booking{
			VehicleID:             input.VehicleID,
			DriverID:              input.DriverID,
			CreatedByID:           userId,
			TripType:              input.TripType,
			DestinationCity:       input.DestinationCity,
			StartDate:             startDate,
			EndDate:               endDate,
			StartTime:             input.StartTime,
			MeterReading:          input.MeterReading,
			DriverPreference:      input.DriverPreference,
			CustomerLicenseNumber: input.CustomerLicenseNumber,
			TotalBill:             input.TotalBill,
			AdvancePaid:           input.AdvancePaid,
			DiscountPercentage:    input.DiscountPercentage,
			DiscountReference:     input.DiscountReference,
			Status:                models.BookingStatusActive,
		}
		if err := booking.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		// The customer upsert, booking insert, driver flag flip and the
		// availability re-check run in one transaction. The legacy system
		// checked availability outside any transaction, so two concurrent
		// requests could both pass it and double-book.
		err = db.Transaction(func(tx *gorm.DB) error {
			ok, err := IsVehicleAvailable(tx, input.VehicleID, startDate, endDate, 0)
			if err != nil {
				return err
			}
			if !ok {
				return errDateConflict
			}

			customer, err := findOrCreateCustomer(tx, input.CustomerName, input.CustomerPhone, input.CustomerCNIC, now)
			if err != nil {
				return err
			}
			booking.CustomerID = customer.ID

			if err := tx.Create(&booking).Error; err != nil {
				return err
			}

			if booking.DriverID != nil {
				if err := claimDriver(tx, *booking.DriverID); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, errDateConflict) || errors.Is(err, errDriverConflict) {
				c.JSON(409, gin.H{"error": err.Error()})
				return
			}
			logrus.WithError(err).Error("booking creation failed")
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		ctx := context.Background()
		if booking.DriverID != nil {
			services.SetDriverAvailability(ctx, *booking.DriverID, false)
		}
		services.InvalidateDashboardCache(ctx)
		event := services.BookingEvent{
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			DriverID:  booking.DriverID,
			Status:    string(booking.Status),
			ActorID:   userId,
		}
		hub.BroadcastBookingEvent("booking_created", event)
		// The vehicle's owner gets their own copy; stakeholders are not on
		// the staff broadcast.
		hub.NotifyBookingEvent(vehicle.OwnerID, "booking_created", event)

		c.JSON(201, gin.H{
			"booking": booking,
			"billing": utils.ComputeBilling(booking.TotalBill, booking.DiscountPercentage, booking.AdvancePaid),
		})
	}
}

// GetBookings lists bookings, optionally filtered by status or vehicle
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Vehicle").Preload("Driver").Preload("Customer").
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if vehicleID := c.Query("vehicleId"); vehicleID != "" {
			query = query.Where("vehicle_id = ?", vehicleID)
		}

		var bookings []models.Booking
		if err := query.Find(&bookings).Error; err != nil {
			logrus.WithError(err).Error("booking list failed")
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetBooking retrieves a booking with its derived billing figures
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")

		var booking models.Booking
		if err := db.Preload("Vehicle").Preload("Driver").Preload("Customer").
			First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		c.JSON(200, gin.H{
			"booking":      booking,
			"billing":      utils.ComputeBilling(booking.TotalBill, booking.DiscountPercentage, booking.AdvancePaid),
			"durationDays": utils.TripDurationDays(booking.StartDate, booking.EndDate),
		})
	}
}

// bookingUpdateInput carries the PATCH body: every field is optional and
// unset fields keep their stored value.
type bookingUpdateInput struct {
	DriverID              *uint    `json:"driverId"`
	TripType              *string  `json:"tripType"`
	DestinationCity       *string  `json:"destinationCity"`
	StartDate             *string  `json:"startDate"`
	EndDate               *string  `json:"endDate"`
	StartTime             *string  `json:"startTime"`
	MeterReading          *float64 `json:"meterReading"`
	DriverPreference      *string  `json:"driverPreference"`
	CustomerLicenseNumber *string  `json:"customerLicenseNumber"`
	TotalBill             *float64 `json:"totalBill"`
	AdvancePaid           *float64 `json:"advancePaid"`
	DiscountPercentage    *float64 `json:"discountPercentage"`
	DiscountReference     *string  `json:"discountReference"`
}

// applyBookingUpdate merges the partial update into the stored booking and
// reports whether the date range changed, which forces a fresh
// availability check.
func applyBookingUpdate(b *models.Booking, in bookingUpdateInput) (datesChanged bool, err error) {
	if in.StartDate != nil {
		start, err := time.Parse(dateLayout, *in.StartDate)
		if err != nil {
			return false, errors.New("startDate must be in YYYY-MM-DD format")
		}
		b.StartDate = start
		datesChanged = true
	}
	if in.EndDate != nil {
		end, err := time.Parse(dateLayout, *in.EndDate)
		if err != nil {
			return false, errors.New("endDate must be in YYYY-MM-DD format")
		}
		b.EndDate = end
		datesChanged = true
	}
	if in.DriverID != nil {
		b.DriverID = in.DriverID
	}
	if in.TripType != nil {
		b.TripType = *in.TripType
	}
	if in.DestinationCity != nil {
		b.DestinationCity = *in.DestinationCity
	}
	if in.StartTime != nil {
		b.StartTime = *in.StartTime
	}
	if in.MeterReading != nil {
		b.MeterReading = *in.MeterReading
	}
	if in.DriverPreference != nil {
		b.DriverPreference = *in.DriverPreference
		// A self-drive booking holds no company driver; the handler
		// releases the one previously assigned.
		if *in.DriverPreference == string(models.DriverPreferenceSelf) {
			b.DriverID = nil
		}
	}
	if in.CustomerLicenseNumber != nil {
		b.CustomerLicenseNumber = *in.CustomerLicenseNumber
	}
	if in.TotalBill != nil {
		b.TotalBill = *in.TotalBill
	}
	if in.AdvancePaid != nil {
		b.AdvancePaid = *in.AdvancePaid
	}
	if in.DiscountPercentage != nil {
		b.DiscountPercentage = *in.DiscountPercentage
	}
	if in.DiscountReference != nil {
		b.DiscountReference = *in.DiscountReference
	}
	return datesChanged, nil
}

// UpdateBooking applies a partial update to an active booking
func UpdateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input bookingUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.Status != models.BookingStatusActive {
			c.JSON(400, gin.H{"error": "Only active bookings can be edited"})
			return
		}

		oldDriverID := booking.DriverID

		datesChanged, err := applyBookingUpdate(&booking, input)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := booking.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driverChanged := !sameDriver(oldDriverID, booking.DriverID)

		if driverChanged && booking.DriverID != nil {
			var driver models.Driver
			if err := db.First(&driver, *booking.DriverID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Driver not found"})
				return
			}
			if !driver.Active {
				c.JSON(400, gin.H{"error": "Driver is deactivated"})
				return
			}
			if !driver.Available {
				c.JSON(409, gin.H{"error": "Driver is already assigned to another booking"})
				return
			}
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if datesChanged {
				ok, err := IsVehicleAvailable(tx, booking.VehicleID, booking.StartDate, booking.EndDate, booking.ID)
				if err != nil {
					return err
				}
				if !ok {
					return errDateConflict
				}
			}

			if err := tx.Save(&booking).Error; err != nil {
				return err
			}

			if driverChanged {
				if err := releaseDriver(tx, oldDriverID); err != nil {
					return err
				}
				if booking.DriverID != nil {
					if err := claimDriver(tx, *booking.DriverID); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, errDateConflict) || errors.Is(err, errDriverConflict) {
				c.JSON(409, gin.H{"error": err.Error()})
				return
			}
			logrus.WithError(err).Error("booking update failed")
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		ctx := context.Background()
		if driverChanged {
			if oldDriverID != nil {
				services.SetDriverAvailability(ctx, *oldDriverID, true)
			}
			if booking.DriverID != nil {
				services.SetDriverAvailability(ctx, *booking.DriverID, false)
			}
		}
		services.InvalidateDashboardCache(ctx)
		hub.BroadcastBookingEvent("booking_updated", services.BookingEvent{
			BookingID: booking.ID,
			VehicleID: booking.VehicleID,
			DriverID:  booking.DriverID,
			Status:    string(booking.Status),
			ActorID:   userId,
		})

		c.JSON(200, gin.H{
			"booking": booking,
			"billing": utils.ComputeBilling(booking.TotalBill, booking.DiscountPercentage, booking.AdvancePaid),
		})
	}
}
