package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBillTotal(t *testing.T) {
	bill := Bill{
		Positions: []Position{
			{Description: "fee", Amount: decimal.RequireFromString("50.00")},
			{Description: "donation", Amount: decimal.RequireFromString("12.50")},
		},
	}
	if got := bill.Total(); !got.Equal(decimal.RequireFromString("62.50")) {
		t.Errorf("Total() = %s, want 62.50", got)
	}
}

func TestBillTotalEmpty(t *testing.T) {
	var bill Bill
	if got := bill.Total(); !got.Equal(decimal.Zero) {
		t.Errorf("Total() = %s, want 0", got)
	}
}

func TestFeeTotal(t *testing.T) {
	fee := Fee{Amount: decimal.NewFromInt(50), Donation: decimal.NewFromInt(10)}
	if got := fee.Total(); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Total() = %s, want 60", got)
	}
}

func TestManifestValidate(t *testing.T) {
	manifest := &Manifest{Messages: []Message{{File: "notification_1.html"}}, Total: 2}
	if err := manifest.Validate(); err == nil {
		t.Error("expected validation error for total mismatch")
	}

	manifest.Total = 1
	if err := manifest.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	empty := &Manifest{}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty manifest should be valid, got %v", err)
	}
}
