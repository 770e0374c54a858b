package handlers

import (
	"github.com/driveline/rental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetProfile retrieves the authenticated user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":                   user.ID,
			"email":                user.Email,
			"name":                 user.Name,
			"phoneNumber":          user.PhoneNumber,
			"role":                 user.Role,
			"commissionPercentage": user.CommissionPercentage,
		})
	}
}

// UpdateProfile updates the authenticated user's own details
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Name        *string `json:"name"`
			PhoneNumber *string `json:"phoneNumber"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		// Update fields individually to handle empty strings properly
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}

		if err := db.Save(&user).Error; err != nil {
			logrus.WithError(err).Error("profile update failed")
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"name":        user.Name,
			"phoneNumber": user.PhoneNumber,
			"role":        user.Role,
		})
	}
}

// GetUsers lists all users, optionally filtered by role
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			logrus.WithError(err).Error("user list failed")
			c.JSON(500, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(200, users)
	}
}

// UpdateUser lets an admin change a user's role, blocked flag or
// commission rate
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIdParam := c.Param("id")

		var input struct {
			Role                 *string  `json:"role" binding:"omitempty,oneof=admin employee stakeholder"`
			Blocked              *bool    `json:"blocked"`
			CommissionPercentage *float64 `json:"commissionPercentage"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userIdParam).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.Blocked != nil {
			user.Blocked = *input.Blocked
		}
		if input.CommissionPercentage != nil {
			if *input.CommissionPercentage < 0 || *input.CommissionPercentage > 100 {
				c.JSON(400, gin.H{"error": "Commission percentage must be between 0 and 100"})
				return
			}
			user.CommissionPercentage = *input.CommissionPercentage
		}

		if err := db.Save(&user).Error; err != nil {
			logrus.WithError(err).Error("user update failed")
			c.JSON(500, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(200, user)
	}
}
