package utils

import (
	"fmt"
	"time"

	"github.com/driveline/rental-backend/internal/models"
)

// BookingRevenue is the net amount a booking earns: the total bill after
// discount. Cancelled bookings earn nothing.
func BookingRevenue(b models.Booking) float64 {
	if b.Status == models.BookingStatusCancelled {
		return 0
	}
	return b.TotalBill * (100 - b.DiscountPercentage) / 100
}

// TotalRevenue sums net revenue over a set of bookings, skipping cancelled
// ones.
func TotalRevenue(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += BookingRevenue(b)
	}
	return total
}

// CommissionAmount applies a stakeholder commission rate to net revenue.
func CommissionAmount(revenue, rate float64) float64 {
	return revenue * rate / 100
}

// TotalExpenses sums a set of expense ledger entries.
func TotalExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// Profit is net revenue less commission and expenses.
func Profit(revenue, commission, expenses float64) float64 {
	return revenue - commission - expenses
}

// PercentChange formats the month-over-month change for dashboard display.
// A previous value of zero renders as "+100%" when the current value is
// positive and "0%" otherwise; the result is display-only and never fed
// back into arithmetic.
func PercentChange(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	change := (current - previous) / previous * 100
	return fmt.Sprintf("%+.1f%%", change)
}

// MonthlyStat is one bucket of the time-windowed rollup.
type MonthlyStat struct {
	Month      string  `json:"month"` // e.g. "Jun 2024"
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
	Expenses   float64 `json:"expenses"`
	Profit     float64 `json:"profit"`
	Bookings   int     `json:"bookings"`
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyBreakdown buckets bookings (by start date) and expenses (by date)
// into the trailing `months` calendar months ending at the month of `now`,
// oldest first, applying the same revenue/commission/profit formulas per
// bucket.
func MonthlyBreakdown(bookings []models.Booking, expenses []models.Expense, commissionRate float64, now time.Time, months int) []MonthlyStat {
	stats := make([]MonthlyStat, months)
	buckets := make(map[string]int, months)
	for i := 0; i < months; i++ {
		m := monthStart(now).AddDate(0, i-months+1, 0)
		key := m.Format("Jan 2006")
		stats[i] = MonthlyStat{Month: key}
		buckets[key] = i
	}

	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		if i, ok := buckets[b.StartDate.Format("Jan 2006")]; ok {
			stats[i].Revenue += BookingRevenue(b)
			stats[i].Bookings++
		}
	}
	for _, e := range expenses {
		if i, ok := buckets[e.Date.Format("Jan 2006")]; ok {
			stats[i].Expenses += e.Amount
		}
	}
	for i := range stats {
		stats[i].Commission = CommissionAmount(stats[i].Revenue, commissionRate)
		stats[i].Profit = Profit(stats[i].Revenue, stats[i].Commission, stats[i].Expenses)
	}
	return stats
}

// InMonth reports whether t falls in the same calendar month as ref.
func InMonth(t, ref time.Time) bool {
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}
