package handlers

import (
	"strconv"
	"time"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// reportWindow parses optional from/to query bounds; zero times mean
// unbounded.
func reportWindow(c *gin.Context) (from, to time.Time, err error) {
	if s := c.Query("from"); s != "" {
		from, err = time.Parse(dateLayout, s)
		if err != nil {
			return
		}
	}
	if s := c.Query("to"); s != "" {
		to, err = time.Parse(dateLayout, s)
		if err != nil {
			return
		}
	}
	return
}

func windowed(query *gorm.DB, column string, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		query = query.Where(column+" >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where(column+" <= ?", to)
	}
	return query
}

// GetVehicleReport computes the revenue/commission/expense/profit rollup
// for one vehicle over an optional date window.
func GetVehicleReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.Preload("Owner").First(&vehicle, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		from, to, err := reportWindow(c)
		if err != nil {
			c.JSON(400, gin.H{"error": "from/to must be in YYYY-MM-DD format"})
			return
		}

		var bookings []models.Booking
		if err := windowed(db.Where("vehicle_id = ?", vehicle.ID), "start_date", from, to).
			Preload("Customer").Find(&bookings).Error; err != nil {
			logrus.WithError(err).Error("vehicle report booking query failed")
			c.JSON(500, gin.H{"error": "Failed to compute vehicle report"})
			return
		}

		var expenses []models.Expense
		if err := windowed(db.Where("vehicle_id = ?", vehicle.ID), "date", from, to).
			Find(&expenses).Error; err != nil {
			logrus.WithError(err).Error("vehicle report expense query failed")
			c.JSON(500, gin.H{"error": "Failed to compute vehicle report"})
			return
		}

		// Commission accrues only when the vehicle is stakeholder-owned.
		commissionRate := 0.0
		if vehicle.Owner.Role == string(models.RoleStakeholder) {
			commissionRate = vehicle.Owner.CommissionPercentage
		}

		revenue := utils.TotalRevenue(bookings)
		commission := utils.CommissionAmount(revenue, commissionRate)
		totalExpenses := utils.TotalExpenses(expenses)

		c.JSON(200, gin.H{
			"vehicle":          vehicle,
			"bookings":         bookings,
			"expenses":         expenses,
			"totalRevenue":     revenue,
			"commissionRate":   commissionRate,
			"commissionAmount": commission,
			"totalExpenses":    totalExpenses,
			"totalProfit":      utils.Profit(revenue, commission, totalExpenses),
		})
	}
}

// GetStakeholderReport computes the rollup across every vehicle a
// stakeholder owns, applying their commission rate. Stakeholders may only
// view their own report.
func GetStakeholderReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := c.GetString("userRole")

		stakeholderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid stakeholder ID"})
			return
		}

		if userRole == string(models.RoleStakeholder) && uint(stakeholderID) != userId {
			c.JSON(403, gin.H{"error": "Stakeholders may only view their own report"})
			return
		}

		var stakeholder models.User
		if err := db.Where("id = ? AND role = ?", stakeholderID, models.RoleStakeholder).
			First(&stakeholder).Error; err != nil {
			c.JSON(404, gin.H{"error": "Stakeholder not found"})
			return
		}

		from, to, err := reportWindow(c)
		if err != nil {
			c.JSON(400, gin.H{"error": "from/to must be in YYYY-MM-DD format"})
			return
		}

		var vehicles []models.Vehicle
		if err := db.Where("owner_id = ?", stakeholder.ID).Find(&vehicles).Error; err != nil {
			logrus.WithError(err).Error("stakeholder report vehicle query failed")
			c.JSON(500, gin.H{"error": "Failed to compute stakeholder report"})
			return
		}

		vehicleIDs := make([]uint, 0, len(vehicles))
		for _, v := range vehicles {
			vehicleIDs = append(vehicleIDs, v.ID)
		}

		var bookings []models.Booking
		var expenses []models.Expense
		if len(vehicleIDs) > 0 {
			if err := windowed(db.Where("vehicle_id IN ?", vehicleIDs), "start_date", from, to).
				Find(&bookings).Error; err != nil {
				logrus.WithError(err).Error("stakeholder report booking query failed")
				c.JSON(500, gin.H{"error": "Failed to compute stakeholder report"})
				return
			}
			if err := windowed(db.Where("vehicle_id IN ?", vehicleIDs), "date", from, to).
				Find(&expenses).Error; err != nil {
				logrus.WithError(err).Error("stakeholder report expense query failed")
				c.JSON(500, gin.H{"error": "Failed to compute stakeholder report"})
				return
			}
		}

		revenue := utils.TotalRevenue(bookings)
		commission := utils.CommissionAmount(revenue, stakeholder.CommissionPercentage)
		totalExpenses := utils.TotalExpenses(expenses)

		perVehicle := make([]gin.H, 0, len(vehicles))
		for _, v := range vehicles {
			var vRevenue float64
			var vBookings int
			for _, b := range bookings {
				if b.VehicleID == v.ID {
					vRevenue += utils.BookingRevenue(b)
					if b.Status != models.BookingStatusCancelled {
						vBookings++
					}
				}
			}
			perVehicle = append(perVehicle, gin.H{
				"vehicleId":          v.ID,
				"registrationNumber": v.RegistrationNumber,
				"modelName":          v.ModelName,
				"revenue":            vRevenue,
				"bookings":           vBookings,
			})
		}

		c.JSON(200, gin.H{
			"stakeholder": gin.H{
				"id":                   stakeholder.ID,
				"name":                 stakeholder.Name,
				"commissionPercentage": stakeholder.CommissionPercentage,
			},
			"vehicles":         perVehicle,
			"totalRevenue":     revenue,
			"commissionAmount": commission,
			"totalExpenses":    totalExpenses,
			"totalProfit":      utils.Profit(revenue, commission, totalExpenses),
		})
	}
}
