package handlers

import (
	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateVehicle registers a new vehicle under an owner
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := c.GetString("userRole")

		var input struct {
			ModelName          string `json:"modelName" binding:"required"`
			Year               int    `json:"year" binding:"required"`
			Color              string `json:"color"`
			Variant            string `json:"variant"`
			RegistrationNumber string `json:"registrationNumber" binding:"required"`
			ChassisNumber      string `json:"chassisNumber" binding:"required"`
			EngineNumber       string `json:"engineNumber" binding:"required"`
			OwnerID            *uint  `json:"ownerId"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Stakeholders register vehicles under themselves; staff may name
		// any owner.
		ownerID := userId
		if input.OwnerID != nil && userRole != string(models.RoleStakeholder) {
			ownerID = *input.OwnerID
		}

		var owner models.User
		if err := db.First(&owner, ownerID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Owner not found"})
			return
		}

		vehicle := models.Vehicle{
			ModelName:          input.ModelName,
			Year:               input.Year,
			Color:              input.Color,
			Variant:            input.Variant,
			RegistrationNumber: input.RegistrationNumber,
			ChassisNumber:      input.ChassisNumber,
			EngineNumber:       input.EngineNumber,
			OwnerID:            ownerID,
		}

		if err := db.Create(&vehicle).Error; err != nil {
			logrus.WithError(err).Error("vehicle creation failed")
			c.JSON(409, gin.H{"error": "A vehicle with this registration, chassis or engine number already exists"})
			return
		}

		c.JSON(201, vehicle)
	}
}

// GetVehicles lists vehicles, hiding soft-deleted ones by default
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Owner").Order("created_at DESC")

		if c.Query("includeDeleted") != "true" {
			query = query.Where("deleted = ?", false)
		}
		if ownerID := c.Query("ownerId"); ownerID != "" {
			query = query.Where("owner_id = ?", ownerID)
		}

		var vehicles []models.Vehicle
		if err := query.Find(&vehicles).Error; err != nil {
			logrus.WithError(err).Error("vehicle list failed")
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(200, vehicles)
	}
}

// GetVehicle retrieves a single vehicle
func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.Preload("Owner").First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(200, vehicle)
	}
}

// UpdateVehicle applies a partial update to a vehicle
func UpdateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ModelName          *string `json:"modelName"`
			Year               *int    `json:"year"`
			Color              *string `json:"color"`
			Variant            *string `json:"variant"`
			RegistrationNumber *string `json:"registrationNumber"`
			ChassisNumber      *string `json:"chassisNumber"`
			EngineNumber       *string `json:"engineNumber"`
			OwnerID            *uint   `json:"ownerId"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		if input.ModelName != nil {
			vehicle.ModelName = *input.ModelName
		}
		if input.Year != nil {
			vehicle.Year = *input.Year
		}
		if input.Color != nil {
			vehicle.Color = *input.Color
		}
		if input.Variant != nil {
			vehicle.Variant = *input.Variant
		}
		if input.RegistrationNumber != nil {
			vehicle.RegistrationNumber = *input.RegistrationNumber
		}
		if input.ChassisNumber != nil {
			vehicle.ChassisNumber = *input.ChassisNumber
		}
		if input.EngineNumber != nil {
			vehicle.EngineNumber = *input.EngineNumber
		}
		if input.OwnerID != nil {
			vehicle.OwnerID = *input.OwnerID
		}

		if err := db.Save(&vehicle).Error; err != nil {
			logrus.WithError(err).Error("vehicle update failed")
			c.JSON(409, gin.H{"error": "A vehicle with this registration, chassis or engine number already exists"})
			return
		}

		c.JSON(200, vehicle)
	}
}

// DeleteVehicle soft-deletes a vehicle. Deletion is refused while any
// active booking references it; booking history is never discarded.
func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		var liveBookings int64
		if err := db.Model(&models.Booking{}).
			Where("vehicle_id = ? AND status = ?", vehicle.ID, models.BookingStatusActive).
			Count(&liveBookings).Error; err != nil {
			logrus.WithError(err).Error("vehicle delete check failed")
			c.JSON(500, gin.H{"error": "Failed to delete vehicle"})
			return
		}
		if liveBookings > 0 {
			c.JSON(409, gin.H{"error": "Vehicle has active bookings and cannot be deleted"})
			return
		}

		if err := db.Model(&vehicle).Update("deleted", true).Error; err != nil {
			logrus.WithError(err).Error("vehicle delete failed")
			c.JSON(500, gin.H{"error": "Failed to delete vehicle"})
			return
		}

		c.JSON(200, gin.H{"message": "Vehicle deleted"})
	}
}

// UploadVehiclePhoto stores a vehicle photo and records its URL
func UploadVehiclePhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "photo file is required"})
			return
		}

		url, err := services.UploadImage(file, services.VehiclePhotoFolder)
		if err != nil {
			logrus.WithError(err).Error("vehicle photo upload failed")
			c.JSON(500, gin.H{"error": "Failed to upload photo"})
			return
		}

		if err := db.Model(&vehicle).Update("photo_url", url).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save photo URL"})
			return
		}

		// Drop the replaced object so the bucket does not accumulate
		// orphaned photos.
		if vehicle.PhotoURL != "" && vehicle.PhotoURL != url {
			if err := services.DeleteImage(vehicle.PhotoURL); err != nil {
				logrus.WithError(err).Warn("failed to delete previous vehicle photo")
			}
		}

		c.JSON(200, gin.H{"photoUrl": url})
	}
}
