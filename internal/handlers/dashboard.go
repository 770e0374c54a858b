package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/driveline/rental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetDashboardSummary returns the current-vs-previous-month rollup for the
// whole fleet. The rendered payload is cached in Redis for a minute and
// invalidated on booking/expense writes.
func GetDashboardSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		if cached, err := services.GetCachedDashboardSummary(ctx); err == nil {
			c.Data(200, "application/json", cached)
			return
		}

		now := time.Now()
		prevMonth := now.AddDate(0, -1, 0)
		windowStart := time.Date(prevMonth.Year(), prevMonth.Month(), 1, 0, 0, 0, 0, time.UTC)

		var bookings []models.Booking
		if err := db.Where("start_date >= ?", windowStart).Find(&bookings).Error; err != nil {
			logrus.WithError(err).Error("dashboard booking query failed")
			c.JSON(500, gin.H{"error": "Failed to compute dashboard summary"})
			return
		}

		var expenses []models.Expense
		if err := db.Where("date >= ?", windowStart).Find(&expenses).Error; err != nil {
			logrus.WithError(err).Error("dashboard expense query failed")
			c.JSON(500, gin.H{"error": "Failed to compute dashboard summary"})
			return
		}

		var curBookings, prevBookings []models.Booking
		for _, b := range bookings {
			switch {
			case utils.InMonth(b.StartDate, now):
				curBookings = append(curBookings, b)
			case utils.InMonth(b.StartDate, prevMonth):
				prevBookings = append(prevBookings, b)
			}
		}

		var curExpenses, prevExpenses float64
		for _, e := range expenses {
			switch {
			case utils.InMonth(e.Date, now):
				curExpenses += e.Amount
			case utils.InMonth(e.Date, prevMonth):
				prevExpenses += e.Amount
			}
		}

		curRevenue := utils.TotalRevenue(curBookings)
		prevRevenue := utils.TotalRevenue(prevBookings)
		curProfit := utils.Profit(curRevenue, 0, curExpenses)
		prevProfit := utils.Profit(prevRevenue, 0, prevExpenses)

		summary := gin.H{
			"currentMonth": gin.H{
				"revenue":  curRevenue,
				"expenses": curExpenses,
				"profit":   curProfit,
				"bookings": len(curBookings),
			},
			"previousMonth": gin.H{
				"revenue":  prevRevenue,
				"expenses": prevExpenses,
				"profit":   prevProfit,
				"bookings": len(prevBookings),
			},
			"change": gin.H{
				"revenue":  utils.PercentChange(curRevenue, prevRevenue),
				"expenses": utils.PercentChange(curExpenses, prevExpenses),
				"profit":   utils.PercentChange(curProfit, prevProfit),
				"bookings": utils.PercentChange(float64(len(curBookings)), float64(len(prevBookings))),
			},
		}

		if payload, err := json.Marshal(summary); err == nil {
			services.CacheDashboardSummary(ctx, payload)
		}

		c.JSON(200, summary)
	}
}

// GetMonthlyBreakdown returns the trailing six-month revenue/expense/profit
// series used by the dashboard chart.
func GetMonthlyBreakdown(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

		var bookings []models.Booking
		if err := db.Where("start_date >= ?", windowStart).Find(&bookings).Error; err != nil {
			logrus.WithError(err).Error("monthly breakdown booking query failed")
			c.JSON(500, gin.H{"error": "Failed to compute monthly breakdown"})
			return
		}

		var expenses []models.Expense
		if err := db.Where("date >= ?", windowStart).Find(&expenses).Error; err != nil {
			logrus.WithError(err).Error("monthly breakdown expense query failed")
			c.JSON(500, gin.H{"error": "Failed to compute monthly breakdown"})
			return
		}

		c.JSON(200, gin.H{
			"months": utils.MonthlyBreakdown(bookings, expenses, 0, now, 6),
		})
	}
}
