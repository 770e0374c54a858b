package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	Name           string `json:"name" gorm:"not null"`
	LicenseNumber  string `json:"licenseNumber" gorm:"column:license_number;unique;not null"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber" gorm:"column:phone_number"`
	AltPhoneNumber string `json:"altPhoneNumber" gorm:"column:alt_phone_number"`
	PhotoURL       string `json:"photoUrl" gorm:"column:photo_url"`

	// Available flips to false while the driver is assigned to an active
	// booking and back to true when that booking ends.
	Available bool `json:"available" gorm:"not null;default:true"`

	// Active is the soft-deactivation flag; inactive drivers are hidden from
	// assignment but keep their booking history.
	Active bool `json:"active" gorm:"not null;default:true"`
}
