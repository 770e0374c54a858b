package handlers

import (
	"testing"
	"time"

	"github.com/driveline/rental-backend/internal/models"
)

func activeBooking() models.Booking {
	return models.Booking{
		VehicleID:        1,
		CustomerID:       1,
		CreatedByID:      1,
		TripType:         string(models.TripTypeWithinCity),
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		StartTime:        "09:00",
		MeterReading:     5000,
		DriverPreference: string(models.DriverPreferenceSelf),
		TotalBill:        10000,
		AdvancePaid:      2000,
		Status:           models.BookingStatusActive,
	}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint      { return &u }

func TestApplyBookingUpdateKeepsUnsetFields(t *testing.T) {
	b := activeBooking()

	datesChanged, err := applyBookingUpdate(&b, bookingUpdateInput{
		TotalBill: f64Ptr(12000),
	})
	if err != nil {
		t.Fatalf("applyBookingUpdate: %v", err)
	}
	if datesChanged {
		t.Error("datesChanged = true for a money-only update")
	}

	if b.TotalBill != 12000 {
		t.Errorf("TotalBill = %v, want 12000", b.TotalBill)
	}
	if b.AdvancePaid != 2000 {
		t.Errorf("AdvancePaid = %v, want unchanged 2000", b.AdvancePaid)
	}
	if b.StartTime != "09:00" {
		t.Errorf("StartTime = %q, want unchanged", b.StartTime)
	}
	if !b.StartDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("StartDate changed unexpectedly")
	}
}

func TestApplyBookingUpdateFlagsDateChange(t *testing.T) {
	b := activeBooking()

	// A changed date range must force a fresh availability check.
	datesChanged, err := applyBookingUpdate(&b, bookingUpdateInput{
		EndDate: strPtr("2024-06-08"),
	})
	if err != nil {
		t.Fatalf("applyBookingUpdate: %v", err)
	}
	if !datesChanged {
		t.Error("datesChanged = false after end date change")
	}
	if !b.EndDate.Equal(time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EndDate = %v, want 2024-06-08", b.EndDate)
	}
}

func TestApplyBookingUpdateRejectsBadDate(t *testing.T) {
	b := activeBooking()

	if _, err := applyBookingUpdate(&b, bookingUpdateInput{StartDate: strPtr("06/01/2024")}); err == nil {
		t.Error("expected error for malformed start date")
	}
	if _, err := applyBookingUpdate(&b, bookingUpdateInput{EndDate: strPtr("not-a-date")}); err == nil {
		t.Error("expected error for malformed end date")
	}
}

func TestApplyBookingUpdateSetsDriver(t *testing.T) {
	b := activeBooking()

	if _, err := applyBookingUpdate(&b, bookingUpdateInput{
		DriverID:         uintPtr(7),
		DriverPreference: strPtr(string(models.DriverPreferenceDriver)),
	}); err != nil {
		t.Fatalf("applyBookingUpdate: %v", err)
	}

	if b.DriverID == nil || *b.DriverID != 7 {
		t.Errorf("DriverID = %v, want 7", b.DriverID)
	}
	if b.DriverPreference != string(models.DriverPreferenceDriver) {
		t.Errorf("DriverPreference = %q, want driver", b.DriverPreference)
	}
}

func TestApplyBookingUpdateSelfPreferenceClearsDriver(t *testing.T) {
	b := activeBooking()
	b.DriverID = uintPtr(7)
	b.DriverPreference = string(models.DriverPreferenceDriver)
	b.CustomerLicenseNumber = "LIC-123"

	if _, err := applyBookingUpdate(&b, bookingUpdateInput{
		DriverPreference: strPtr(string(models.DriverPreferenceSelf)),
	}); err != nil {
		t.Fatalf("applyBookingUpdate: %v", err)
	}

	if b.DriverID != nil {
		t.Errorf("DriverID = %v, want nil after switching to self-drive", *b.DriverID)
	}

	// Even an explicit driver in the same request loses to the preference.
	b2 := activeBooking()
	b2.DriverID = uintPtr(7)
	if _, err := applyBookingUpdate(&b2, bookingUpdateInput{
		DriverID:         uintPtr(9),
		DriverPreference: strPtr(string(models.DriverPreferenceSelf)),
	}); err != nil {
		t.Fatalf("applyBookingUpdate: %v", err)
	}
	if b2.DriverID != nil {
		t.Errorf("DriverID = %v, want nil when preference is self", *b2.DriverID)
	}
}

func TestSameDriver(t *testing.T) {
	tests := []struct {
		name string
		a, b *uint
		want bool
	}{
		{"both unassigned", nil, nil, true},
		{"assigned vs unassigned", uintPtr(7), nil, false},
		{"unassigned vs assigned", nil, uintPtr(7), false},
		{"same driver", uintPtr(7), uintPtr(7), true},
		{"different drivers", uintPtr(7), uintPtr(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameDriver(tt.a, tt.b); got != tt.want {
				t.Errorf("sameDriver(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPickCustomerPhonePrecedence(t *testing.T) {
	phoneMatch := &models.Customer{FullName: "By Phone"}
	cnicMatch := &models.Customer{FullName: "By CNIC"}

	if got := pickCustomer(phoneMatch, cnicMatch); got != phoneMatch {
		t.Error("expected the phone match to win when both keys resolve")
	}
	if got := pickCustomer(nil, cnicMatch); got != cnicMatch {
		t.Error("expected the CNIC match when phone finds nothing")
	}
	if got := pickCustomer(phoneMatch, nil); got != phoneMatch {
		t.Error("expected the phone match when CNIC finds nothing")
	}
	if got := pickCustomer(nil, nil); got != nil {
		t.Error("expected nil when neither key resolves")
	}
}
