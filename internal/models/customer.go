package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is upserted by natural key (phone number or CNIC) on every
// booking creation rather than registered up front.
type Customer struct {
	gorm.Model
	FullName        string     `json:"fullName" gorm:"column:full_name;not null"`
	PhoneNumber     string     `json:"phoneNumber" gorm:"column:phone_number;unique;not null"`
	CNIC            string     `json:"cnic" gorm:"column:cnic;unique;not null"`
	BookingCount    int        `json:"bookingCount" gorm:"column:booking_count;not null;default:0"`
	LastBookingDate *time.Time `json:"lastBookingDate" gorm:"column:last_booking_date"`
}
