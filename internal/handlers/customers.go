package handlers

import (
	"github.com/driveline/rental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetCustomers lists customers with optional search over name, phone and
// CNIC
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("last_booking_date DESC NULLS LAST")

		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where(
				"full_name ILIKE ? OR phone_number ILIKE ? OR cnic ILIKE ?",
				like, like, like,
			)
		}

		var customers []models.Customer
		if err := query.Find(&customers).Error; err != nil {
			logrus.WithError(err).Error("customer list failed")
			c.JSON(500, gin.H{"error": "Failed to fetch customers"})
			return
		}

		c.JSON(200, customers)
	}
}

// GetCustomer retrieves a customer along with their booking history
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Customer not found"})
			return
		}

		var bookings []models.Booking
		if err := db.Preload("Vehicle").
			Where("customer_id = ?", customer.ID).
			Order("start_date DESC").
			Find(&bookings).Error; err != nil {
			logrus.WithError(err).Error("customer booking history failed")
			c.JSON(500, gin.H{"error": "Failed to fetch booking history"})
			return
		}

		c.JSON(200, gin.H{
			"customer": customer,
			"bookings": bookings,
		})
	}
}
