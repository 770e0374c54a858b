package utils

import "time"

// BillingSnapshot is the derived billing view of a booking. Every call site
// (create response, detail view, cancellation, reports) goes through
// ComputeBilling so the derivation exists exactly once.
type BillingSnapshot struct {
	TotalBill          float64 `json:"totalBill"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	DiscountedTotal    float64 `json:"discountedTotal"`
	AdvancePaid        float64 `json:"advancePaid"`
	RemainingBalance   float64 `json:"remainingBalance"`
}

// ComputeBilling derives the discount and balance figures for a booking.
func ComputeBilling(totalBill, discountPercentage, advancePaid float64) BillingSnapshot {
	discountAmount := totalBill * discountPercentage / 100
	discountedTotal := totalBill - discountAmount
	return BillingSnapshot{
		TotalBill:          totalBill,
		DiscountPercentage: discountPercentage,
		DiscountAmount:     discountAmount,
		DiscountedTotal:    discountedTotal,
		AdvancePaid:        advancePaid,
		RemainingBalance:   discountedTotal - advancePaid,
	}
}

// CompletionBilling is the final billing view produced when a booking is
// completed. Additional charges are added to the total bill before the
// discount is reapplied.
type CompletionBilling struct {
	UpdatedTotalBill      float64 `json:"updatedTotalBill"`
	DiscountAmount        float64 `json:"discountAmount"`
	DiscountedTotal       float64 `json:"discountedTotal"`
	AdvancePaid           float64 `json:"advancePaid"`
	RemainingPayment      float64 `json:"remainingPayment"`
	FinalRemainingBalance float64 `json:"finalRemainingBalance"`
}

// ComputeCompletionBilling derives the final totals for booking completion.
func ComputeCompletionBilling(totalBill, additionalCharges, discountPercentage, advancePaid, remainingPayment float64) CompletionBilling {
	updatedTotal := totalBill + additionalCharges
	discountAmount := updatedTotal * discountPercentage / 100
	discountedTotal := updatedTotal - discountAmount
	return CompletionBilling{
		UpdatedTotalBill:      updatedTotal,
		DiscountAmount:        discountAmount,
		DiscountedTotal:       discountedTotal,
		AdvancePaid:           advancePaid,
		RemainingPayment:      remainingPayment,
		FinalRemainingBalance: discountedTotal - advancePaid - remainingPayment,
	}
}

// TripDurationDays returns the inclusive day count of a booking's date
// range; a same-day booking counts as one day.
func TripDurationDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
