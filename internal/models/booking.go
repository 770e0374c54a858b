package models

import (
	"errors"
	"regexp"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type TripType string

const (
	TripTypeWithinCity TripType = "withincity"
	TripTypeOutOfCity  TripType = "outofcity"
)

type DriverPreference string

const (
	DriverPreferenceDriver DriverPreference = "driver"
	DriverPreferenceSelf   DriverPreference = "self"
)

// allowedTransitions encodes the booking state machine. Both terminal
// states have no outgoing edges.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Booking struct {
	gorm.Model
	VehicleID   uint     `json:"vehicleId" gorm:"not null"`
	Vehicle     Vehicle  `json:"vehicle"`
	DriverID    *uint    `json:"driverId"`
	Driver      *Driver  `json:"driver,omitempty"`
	CustomerID  uint     `json:"customerId" gorm:"not null"`
	Customer    Customer `json:"customer"`
	CreatedByID uint     `json:"createdById" gorm:"not null"`
	CreatedBy   User     `json:"-"`

	TripType        string `json:"tripType" gorm:"column:trip_type;not null"`
	DestinationCity string `json:"destinationCity" gorm:"column:destination_city"`

	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`
	StartTime string    `json:"startTime" gorm:"column:start_time;not null"` // HH:mm
	EndTime   string    `json:"endTime" gorm:"column:end_time"`              // HH:mm, set on completion

	MeterReading          float64 `json:"meterReading" gorm:"column:meter_reading"`
	DriverPreference      string  `json:"driverPreference" gorm:"column:driver_preference;not null"`
	CustomerLicenseNumber string  `json:"customerLicenseNumber" gorm:"column:customer_license_number"`

	TotalBill          float64 `json:"totalBill" gorm:"not null"`
	AdvancePaid        float64 `json:"advancePaid" gorm:"not null;default:0"`
	DiscountPercentage float64 `json:"discountPercentage" gorm:"not null;default:0"`
	DiscountReference  string  `json:"discountReference" gorm:"column:discount_reference"`

	Status BookingStatus `json:"status" gorm:"not null;default:'active'"`

	// Completion fields
	FinalMeterReading        *float64   `json:"finalMeterReading" gorm:"column:final_meter_reading"`
	AdditionalCharges        float64    `json:"additionalCharges" gorm:"column:additional_charges;not null;default:0"`
	RemainingPaymentReceived float64    `json:"remainingPaymentReceived" gorm:"column:remaining_payment_received;not null;default:0"`
	FinalTotalBill           float64    `json:"finalTotalBill" gorm:"column:final_total_bill;not null;default:0"`
	FinalRemainingBalance    float64    `json:"finalRemainingBalance" gorm:"column:final_remaining_balance;not null;default:0"`
	CompletedAt              *time.Time `json:"completedAt"`
	CompletedByID            *uint      `json:"completedById"`

	// Cancellation fields
	CancelReason  string     `json:"cancelReason" gorm:"column:cancel_reason"`
	CancelledAt   *time.Time `json:"cancelledAt"`
	CancelledByID *uint      `json:"cancelledById"`
}

// Validate enforces the booking invariants; it runs on every save.
func (b *Booking) Validate() error {
	if b.TotalBill < 0 {
		return errors.New("total bill must be non-negative")
	}
	if b.AdvancePaid < 0 {
		return errors.New("advance paid must be non-negative")
	}
	if b.AdvancePaid > b.TotalBill {
		return errors.New("advance paid cannot exceed total bill")
	}
	if b.EndDate.Before(b.StartDate) {
		return errors.New("end date must not be before start date")
	}
	if b.DiscountPercentage < 0 || b.DiscountPercentage > 100 {
		return errors.New("discount percentage must be between 0 and 100")
	}
	if b.DiscountPercentage > 0 && b.DiscountReference == "" {
		return errors.New("discount reference is required when a discount is applied")
	}
	if b.AdditionalCharges < 0 {
		return errors.New("additional charges must be non-negative")
	}
	if b.FinalMeterReading != nil && *b.FinalMeterReading < b.MeterReading {
		return errors.New("final meter reading cannot be less than initial meter reading")
	}
	if b.StartTime != "" && !timeOfDayRe.MatchString(b.StartTime) {
		return errors.New("start time must be in HH:mm format")
	}
	if b.EndTime != "" && !timeOfDayRe.MatchString(b.EndTime) {
		return errors.New("end time must be in HH:mm format")
	}
	switch TripType(b.TripType) {
	case TripTypeOutOfCity:
		if b.DestinationCity == "" {
			return errors.New("destination city is required for out-of-city trips")
		}
	case TripTypeWithinCity, "":
	default:
		return errors.New("trip type must be withincity or outofcity")
	}
	return nil
}

func (b *Booking) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}
