package models

import (
	"testing"
	"time"
)

func validBooking() Booking {
	return Booking{
		VehicleID:        1,
		CustomerID:       1,
		CreatedByID:      1,
		TripType:         string(TripTypeWithinCity),
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		StartTime:        "09:30",
		MeterReading:     12000,
		DriverPreference: string(DriverPreferenceSelf),
		TotalBill:        10000,
		AdvancePaid:      3000,
		Status:           BookingStatusActive,
	}
}

func TestBookingValidate(t *testing.T) {
	final := func(v float64) *float64 { return &v }

	cases := []struct {
		name    string
		mutate  func(*Booking)
		wantErr bool
	}{
		{"valid", func(b *Booking) {}, false},
		{"advance exceeds total", func(b *Booking) { b.AdvancePaid = 10001 }, true},
		{"advance equals total", func(b *Booking) { b.AdvancePaid = 10000 }, false},
		{"negative total", func(b *Booking) { b.TotalBill = -1 }, true},
		{"zero total with no advance", func(b *Booking) { b.TotalBill = 0; b.AdvancePaid = 0 }, false},
		{"end before start", func(b *Booking) { b.EndDate = b.StartDate.AddDate(0, 0, -1) }, true},
		{"same day range", func(b *Booking) { b.EndDate = b.StartDate }, false},
		{"discount over 100", func(b *Booking) { b.DiscountPercentage = 101 }, true},
		{"negative discount", func(b *Booking) { b.DiscountPercentage = -1 }, true},
		{"discount without reference", func(b *Booking) { b.DiscountPercentage = 10 }, true},
		{"discount with reference", func(b *Booking) {
			b.DiscountPercentage = 10
			b.DiscountReference = "promo"
		}, false},
		{"final meter below initial", func(b *Booking) { b.FinalMeterReading = final(11000) }, true},
		{"final meter equals initial", func(b *Booking) { b.FinalMeterReading = final(12000) }, false},
		{"bad start time", func(b *Booking) { b.StartTime = "25:00" }, true},
		{"bad end time", func(b *Booking) { b.EndTime = "9:5" }, true},
		{"good end time", func(b *Booking) { b.EndTime = "23:59" }, false},
		{"outofcity without city", func(b *Booking) { b.TripType = string(TripTypeOutOfCity) }, true},
		{"outofcity with city", func(b *Booking) {
			b.TripType = string(TripTypeOutOfCity)
			b.DestinationCity = "Lahore"
		}, false},
		{"unknown trip type", func(b *Booking) { b.TripType = "interstellar" }, true},
		{"negative additional charges", func(b *Booking) { b.AdditionalCharges = -5 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)
			err := b.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusActive, BookingStatusCompleted, true},
		{BookingStatusActive, BookingStatusCancelled, true},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusActive, false},
		{BookingStatusCancelled, BookingStatusCompleted, false},
		{BookingStatusCancelled, BookingStatusActive, false},
		{BookingStatusActive, BookingStatusActive, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
