package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	ModelName          string `json:"modelName" gorm:"column:model_name;not null"`
	Year               int    `json:"year" gorm:"not null"`
	Color              string `json:"color"`
	Variant            string `json:"variant"`
	RegistrationNumber string `json:"registrationNumber" gorm:"column:registration_number;unique;not null"`
	ChassisNumber      string `json:"chassisNumber" gorm:"column:chassis_number;unique;not null"`
	EngineNumber       string `json:"engineNumber" gorm:"column:engine_number;unique;not null"`
	OwnerID            uint   `json:"ownerId" gorm:"not null"`
	Owner              User   `json:"owner"`
	PhotoURL           string `json:"photoUrl" gorm:"column:photo_url"`

	// Vehicles with booking history are never hard-deleted; this flag hides
	// them from listings while preserving report data.
	Deleted bool `json:"deleted" gorm:"not null;default:false"`
}
