package utils

import (
	"testing"
	"time"
)

func TestComputeBillingIdentity(t *testing.T) {
	cases := []struct {
		name               string
		totalBill          float64
		discountPercentage float64
		advancePaid        float64
	}{
		{"no discount", 5000, 0, 2000},
		{"full discount", 1200, 100, 0},
		{"fractional", 999.99, 12.5, 100},
		{"zero bill", 0, 50, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := ComputeBilling(tc.totalBill, tc.discountPercentage, tc.advancePaid)

			wantDiscount := tc.totalBill * tc.discountPercentage / 100
			if b.DiscountAmount != wantDiscount {
				t.Errorf("DiscountAmount = %v, want %v", b.DiscountAmount, wantDiscount)
			}
			if b.DiscountedTotal != tc.totalBill-wantDiscount {
				t.Errorf("DiscountedTotal = %v, want %v", b.DiscountedTotal, tc.totalBill-wantDiscount)
			}
			if b.RemainingBalance != b.DiscountedTotal-tc.advancePaid {
				t.Errorf("RemainingBalance = %v, want %v", b.RemainingBalance, b.DiscountedTotal-tc.advancePaid)
			}
		})
	}
}

func TestComputeBillingScenario(t *testing.T) {
	// totalBill=10000, advance=3000, discount=10%
	b := ComputeBilling(10000, 10, 3000)

	if b.DiscountAmount != 1000 {
		t.Errorf("DiscountAmount = %v, want 1000", b.DiscountAmount)
	}
	if b.DiscountedTotal != 9000 {
		t.Errorf("DiscountedTotal = %v, want 9000", b.DiscountedTotal)
	}
	if b.RemainingBalance != 6000 {
		t.Errorf("RemainingBalance = %v, want 6000", b.RemainingBalance)
	}
}

func TestComputeCompletionBillingScenario(t *testing.T) {
	// totalBill=5000, discount=0%, additional=500, advance=2000, remaining payment=1000
	b := ComputeCompletionBilling(5000, 500, 0, 2000, 1000)

	if b.UpdatedTotalBill != 5500 {
		t.Errorf("UpdatedTotalBill = %v, want 5500", b.UpdatedTotalBill)
	}
	if b.DiscountedTotal != 5500 {
		t.Errorf("DiscountedTotal = %v, want 5500", b.DiscountedTotal)
	}
	if b.FinalRemainingBalance != 2500 {
		t.Errorf("FinalRemainingBalance = %v, want 2500", b.FinalRemainingBalance)
	}
}

func TestComputeCompletionBillingAppliesDiscountAfterCharges(t *testing.T) {
	b := ComputeCompletionBilling(10000, 1000, 10, 3000, 0)

	// (10000 + 1000) * 0.9 = 9900
	if b.DiscountedTotal != 9900 {
		t.Errorf("DiscountedTotal = %v, want 9900", b.DiscountedTotal)
	}
	if b.FinalRemainingBalance != 6900 {
		t.Errorf("FinalRemainingBalance = %v, want 6900", b.FinalRemainingBalance)
	}
}

func TestTripDurationDays(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }

	if got := TripDurationDays(day(1), day(1)); got != 1 {
		t.Errorf("same-day duration = %d, want 1", got)
	}
	if got := TripDurationDays(day(1), day(5)); got != 5 {
		t.Errorf("duration = %d, want 5", got)
	}
}
