package handlers

import (
	"context"
	"time"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateExpense records a new expense ledger entry
func CreateExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Title     string  `json:"title" binding:"required"`
			Amount    float64 `json:"amount" binding:"required"`
			Date      string  `json:"date" binding:"required"`
			Category  string  `json:"category" binding:"required,oneof=fuel maintenance insurance registration tolls parking other"`
			VehicleID *uint   `json:"vehicleId"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		date, err := time.Parse(dateLayout, input.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}

		if input.VehicleID != nil {
			var vehicle models.Vehicle
			if err := db.First(&vehicle, *input.VehicleID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Vehicle not found"})
				return
			}
		}

		expense := models.Expense{
			Title:        input.Title,
			Amount:       input.Amount,
			Date:         date,
			Category:     input.Category,
			VehicleID:    input.VehicleID,
			RecordedByID: userId,
		}
		if err := expense.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := db.Create(&expense).Error; err != nil {
			logrus.WithError(err).Error("expense creation failed")
			c.JSON(500, gin.H{"error": "Failed to record expense"})
			return
		}

		services.InvalidateDashboardCache(context.Background())

		c.JSON(201, expense)
	}
}

// GetExpenses lists expenses with optional vehicle/category/date filters
func GetExpenses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Vehicle").Order("date DESC")

		if vehicleID := c.Query("vehicleId"); vehicleID != "" {
			query = query.Where("vehicle_id = ?", vehicleID)
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if from := c.Query("from"); from != "" {
			if t, err := time.Parse(dateLayout, from); err == nil {
				query = query.Where("date >= ?", t)
			}
		}
		if to := c.Query("to"); to != "" {
			if t, err := time.Parse(dateLayout, to); err == nil {
				query = query.Where("date <= ?", t)
			}
		}

		var expenses []models.Expense
		if err := query.Find(&expenses).Error; err != nil {
			logrus.WithError(err).Error("expense list failed")
			c.JSON(500, gin.H{"error": "Failed to fetch expenses"})
			return
		}

		c.JSON(200, expenses)
	}
}

// UpdateExpense applies a partial update to an expense entry
func UpdateExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title     *string  `json:"title"`
			Amount    *float64 `json:"amount"`
			Date      *string  `json:"date"`
			Category  *string  `json:"category" binding:"omitempty,oneof=fuel maintenance insurance registration tolls parking other"`
			VehicleID *uint    `json:"vehicleId"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var expense models.Expense
		if err := db.First(&expense, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Expense not found"})
			return
		}

		if input.Title != nil {
			expense.Title = *input.Title
		}
		if input.Amount != nil {
			expense.Amount = *input.Amount
		}
		if input.Date != nil {
			date, err := time.Parse(dateLayout, *input.Date)
			if err != nil {
				c.JSON(400, gin.H{"error": "date must be in YYYY-MM-DD format"})
				return
			}
			expense.Date = date
		}
		if input.Category != nil {
			expense.Category = *input.Category
		}
		if input.VehicleID != nil {
			expense.VehicleID = input.VehicleID
		}

		if err := expense.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := db.Save(&expense).Error; err != nil {
			logrus.WithError(err).Error("expense update failed")
			c.JSON(500, gin.H{"error": "Failed to update expense"})
			return
		}

		services.InvalidateDashboardCache(context.Background())

		c.JSON(200, expense)
	}
}

// DeleteExpense removes an expense entry
func DeleteExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var expense models.Expense
		if err := db.First(&expense, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Expense not found"})
			return
		}

		if err := db.Delete(&expense).Error; err != nil {
			logrus.WithError(err).Error("expense delete failed")
			c.JSON(500, gin.H{"error": "Failed to delete expense"})
			return
		}

		services.InvalidateDashboardCache(context.Background())

		c.JSON(200, gin.H{"message": "Expense deleted"})
	}
}
