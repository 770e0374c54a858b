package handlers

import (
	"context"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateDriver registers a new company driver
func CreateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name           string `json:"name" binding:"required"`
			LicenseNumber  string `json:"licenseNumber" binding:"required"`
			Address        string `json:"address"`
			PhoneNumber    string `json:"phoneNumber"`
			AltPhoneNumber string `json:"altPhoneNumber"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver := models.Driver{
			Name:           input.Name,
			LicenseNumber:  input.LicenseNumber,
			Address:        input.Address,
			PhoneNumber:    input.PhoneNumber,
			AltPhoneNumber: input.AltPhoneNumber,
			Available:      true,
			Active:         true,
		}

		if err := db.Create(&driver).Error; err != nil {
			logrus.WithError(err).Error("driver creation failed")
			c.JSON(409, gin.H{"error": "A driver with this license number already exists"})
			return
		}

		services.SetDriverAvailability(context.Background(), driver.ID, true)

		c.JSON(201, driver)
	}
}

// GetDrivers lists drivers; by default only active ones
func GetDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")

		if c.Query("includeInactive") != "true" {
			query = query.Where("active = ?", true)
		}
		if c.Query("available") == "true" {
			query = query.Where("available = ?", true)
		}

		var drivers []models.Driver
		if err := query.Find(&drivers).Error; err != nil {
			logrus.WithError(err).Error("driver list failed")
			c.JSON(500, gin.H{"error": "Failed to fetch drivers"})
			return
		}

		c.JSON(200, drivers)
	}
}

// GetDriver retrieves a single driver
func GetDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}
		c.JSON(200, driver)
	}
}

// UpdateDriver applies a partial update to a driver
func UpdateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name           *string `json:"name"`
			LicenseNumber  *string `json:"licenseNumber"`
			Address        *string `json:"address"`
			PhoneNumber    *string `json:"phoneNumber"`
			AltPhoneNumber *string `json:"altPhoneNumber"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		if input.Name != nil {
			driver.Name = *input.Name
		}
		if input.LicenseNumber != nil {
			driver.LicenseNumber = *input.LicenseNumber
		}
		if input.Address != nil {
			driver.Address = *input.Address
		}
		if input.PhoneNumber != nil {
			driver.PhoneNumber = *input.PhoneNumber
		}
		if input.AltPhoneNumber != nil {
			driver.AltPhoneNumber = *input.AltPhoneNumber
		}

		if err := db.Save(&driver).Error; err != nil {
			logrus.WithError(err).Error("driver update failed")
			c.JSON(409, gin.H{"error": "A driver with this license number already exists"})
			return
		}

		c.JSON(200, driver)
	}
}

// DeactivateDriver soft-deactivates a driver. Refused while the driver is
// assigned to an active booking.
func DeactivateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var liveBookings int64
		if err := db.Model(&models.Booking{}).
			Where("driver_id = ? AND status = ?", driver.ID, models.BookingStatusActive).
			Count(&liveBookings).Error; err != nil {
			logrus.WithError(err).Error("driver deactivation check failed")
			c.JSON(500, gin.H{"error": "Failed to deactivate driver"})
			return
		}
		if liveBookings > 0 {
			c.JSON(409, gin.H{"error": "Driver has active bookings and cannot be deactivated"})
			return
		}

		if err := db.Model(&driver).Update("active", false).Error; err != nil {
			logrus.WithError(err).Error("driver deactivation failed")
			c.JSON(500, gin.H{"error": "Failed to deactivate driver"})
			return
		}

		c.JSON(200, gin.H{"message": "Driver deactivated"})
	}
}

// UpdateDriverAvailability lets staff manually toggle a driver's
// availability, e.g. for leave; booking transitions manage it otherwise.
func UpdateDriverAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Available *bool `json:"available" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		if err := db.Model(&driver).Update("available", *input.Available).Error; err != nil {
			logrus.WithError(err).Error("driver availability update failed")
			c.JSON(500, gin.H{"error": "Failed to update availability"})
			return
		}

		services.SetDriverAvailability(context.Background(), driver.ID, *input.Available)

		c.JSON(200, gin.H{"id": driver.ID, "available": *input.Available})
	}
}

// GetDriverAvailabilityStatus answers the dispatch availability check,
// serving from the Redis mirror and falling back to the stored flag when
// the mirror is cold.
func GetDriverAvailabilityStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		ctx := context.Background()
		available, err := services.GetDriverAvailability(ctx, driver.ID)
		if err != nil {
			available = driver.Available
			services.SetDriverAvailability(ctx, driver.ID, available)
		}

		c.JSON(200, gin.H{"id": driver.ID, "available": available})
	}
}

// UploadDriverPhoto stores a driver photo and records its URL
func UploadDriverPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "photo file is required"})
			return
		}

		url, err := services.UploadImage(file, services.DriverPhotoFolder)
		if err != nil {
			logrus.WithError(err).Error("driver photo upload failed")
			c.JSON(500, gin.H{"error": "Failed to upload photo"})
			return
		}

		if err := db.Model(&driver).Update("photo_url", url).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save photo URL"})
			return
		}

		// Drop the replaced object so the bucket does not accumulate
		// orphaned photos.
		if driver.PhotoURL != "" && driver.PhotoURL != url {
			if err := services.DeleteImage(driver.PhotoURL); err != nil {
				logrus.WithError(err).Warn("failed to delete previous driver photo")
			}
		}

		c.JSON(200, gin.H{"photoUrl": url})
	}
}
