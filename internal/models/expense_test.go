package models

import (
	"testing"
	"time"
)

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Title:        "Oil change",
		Amount:       3500,
		Date:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Category:     string(ExpenseCategoryMaintenance),
		RecordedByID: 1,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noTitle := valid
	noTitle.Title = ""
	if err := noTitle.Validate(); err == nil {
		t.Error("expected error for missing title")
	}

	negative := valid
	negative.Amount = -1
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative amount")
	}

	badCategory := valid
	badCategory.Category = "bribes"
	if err := badCategory.Validate(); err == nil {
		t.Error("expected error for unknown category")
	}
}
