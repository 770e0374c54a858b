package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseCategoryFuel         ExpenseCategory = "fuel"
	ExpenseCategoryMaintenance  ExpenseCategory = "maintenance"
	ExpenseCategoryInsurance    ExpenseCategory = "insurance"
	ExpenseCategoryRegistration ExpenseCategory = "registration"
	ExpenseCategoryTolls        ExpenseCategory = "tolls"
	ExpenseCategoryParking      ExpenseCategory = "parking"
	ExpenseCategoryOther        ExpenseCategory = "other"
)

var expenseCategories = map[ExpenseCategory]bool{
	ExpenseCategoryFuel:         true,
	ExpenseCategoryMaintenance:  true,
	ExpenseCategoryInsurance:    true,
	ExpenseCategoryRegistration: true,
	ExpenseCategoryTolls:        true,
	ExpenseCategoryParking:      true,
	ExpenseCategoryOther:        true,
}

// Expense is a plain ledger entry; it has no state machine.
type Expense struct {
	gorm.Model
	Title        string    `json:"title" gorm:"not null"`
	Amount       float64   `json:"amount" gorm:"not null"`
	Date         time.Time `json:"date" gorm:"not null"`
	Category     string    `json:"category" gorm:"not null"`
	VehicleID    *uint     `json:"vehicleId"`
	Vehicle      *Vehicle  `json:"vehicle,omitempty"`
	RecordedByID uint      `json:"recordedById" gorm:"column:recorded_by_id;not null"`
	RecordedBy   User      `json:"-"`
}

func (e *Expense) Validate() error {
	if e.Title == "" {
		return errors.New("title is required")
	}
	if e.Amount < 0 {
		return errors.New("amount must be non-negative")
	}
	if !expenseCategories[ExpenseCategory(e.Category)] {
		return errors.New("unknown expense category")
	}
	return nil
}

func (e *Expense) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}
