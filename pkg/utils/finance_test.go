package utils

import (
	"testing"
	"time"

	"github.com/driveline/rental-backend/internal/models"
)

func booking(total, discount float64, status models.BookingStatus, start time.Time) models.Booking {
	return models.Booking{
		TotalBill:          total,
		DiscountPercentage: discount,
		Status:             status,
		StartDate:          start,
	}
}

func TestTotalRevenueExcludesCancelled(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		booking(10000, 10, models.BookingStatusActive, start),    // 9000
		booking(5000, 0, models.BookingStatusCompleted, start),   // 5000
		booking(99999, 0, models.BookingStatusCancelled, start),  // excluded
	}

	if got := TotalRevenue(bookings); got != 14000 {
		t.Errorf("TotalRevenue = %v, want 14000", got)
	}
}

func TestCommissionAndProfit(t *testing.T) {
	revenue := 20000.0
	commission := CommissionAmount(revenue, 15)
	if commission != 3000 {
		t.Errorf("CommissionAmount = %v, want 3000", commission)
	}

	expenses := TotalExpenses([]models.Expense{
		{Amount: 1200},
		{Amount: 800},
	})
	if expenses != 2000 {
		t.Errorf("TotalExpenses = %v, want 2000", expenses)
	}

	if got := Profit(revenue, commission, expenses); got != 15000 {
		t.Errorf("Profit = %v, want 15000", got)
	}
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		current, previous float64
		want              string
	}{
		{100, 0, "+100%"},
		{0, 0, "0%"},
		{-5, 0, "0%"},
		{150, 100, "+50.0%"},
		{50, 100, "-50.0%"},
		{100, 100, "+0.0%"},
	}

	for _, tc := range cases {
		if got := PercentChange(tc.current, tc.previous); got != tc.want {
			t.Errorf("PercentChange(%v, %v) = %q, want %q", tc.current, tc.previous, got, tc.want)
		}
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		booking(10000, 0, models.BookingStatusActive, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)),
		booking(4000, 50, models.BookingStatusCompleted, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)), // 2000
		booking(7777, 0, models.BookingStatusCancelled, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),   // excluded
		booking(1000, 0, models.BookingStatusCompleted, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)),  // outside window
	}
	expenses := []models.Expense{
		{Amount: 500, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{Amount: 300, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	}

	stats := MonthlyBreakdown(bookings, expenses, 10, now, 6)

	if len(stats) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(stats))
	}
	if stats[0].Month != "Jan 2024" || stats[5].Month != "Jun 2024" {
		t.Fatalf("unexpected bucket order: %q .. %q", stats[0].Month, stats[5].Month)
	}

	jun := stats[5]
	if jun.Revenue != 10000 || jun.Bookings != 1 {
		t.Errorf("June revenue/bookings = %v/%d, want 10000/1", jun.Revenue, jun.Bookings)
	}
	if jun.Expenses != 500 {
		t.Errorf("June expenses = %v, want 500", jun.Expenses)
	}
	if jun.Commission != 1000 {
		t.Errorf("June commission = %v, want 1000", jun.Commission)
	}
	if jun.Profit != 8500 {
		t.Errorf("June profit = %v, want 8500", jun.Profit)
	}

	may := stats[4]
	if may.Revenue != 2000 {
		t.Errorf("May revenue = %v, want 2000", may.Revenue)
	}

	jan := stats[0]
	if jan.Revenue != 0 || jan.Expenses != 300 {
		t.Errorf("January revenue/expenses = %v/%v, want 0/300", jan.Revenue, jan.Expenses)
	}
}
