package billing

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/models"
)

func discard() *log.Logger {
	return log.New(io.Discard)
}

func TestBuildPaymentsFiltersStatuses(t *testing.T) {
	members := []models.Member{
		{ID: 1, Status: "Aktiv", Email: "a@x.de"},
		{ID: 2, Status: "Ausgetreten", Email: "b@x.de"},
	}
	fees := []models.Fee{
		{MemberID: 1, Amount: decimal.NewFromInt(50)},
	}

	payments := BuildPayments(discard(), members, fees, nil, DefaultStatuses)

	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].Member.ID != 1 {
		t.Errorf("expected member 1, got %d", payments[0].Member.ID)
	}
	if payments[0].Fee == nil || !payments[0].Fee.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected fee of 50 attached to member 1, got %+v", payments[0].Fee)
	}
}

func TestBuildPaymentsDropsUnknownReferences(t *testing.T) {
	members := []models.Member{{ID: 1, Status: "Aktiv"}}
	fees := []models.Fee{
		{MemberID: 99, Amount: decimal.NewFromInt(10)},
		{MemberID: 1, Amount: decimal.NewFromInt(50)},
	}
	mandates := []models.Mandate{
		{ID: "200001", MemberID: 42},
	}

	payments := BuildPayments(discard(), members, fees, mandates, DefaultStatuses)

	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].Fee == nil || !payments[0].Fee.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("fee for member 1 not attached: %+v", payments[0].Fee)
	}
	if payments[0].Mandate != nil {
		t.Errorf("mandate for unknown member must not attach anywhere, got %+v", payments[0].Mandate)
	}
}

func TestBuildPaymentsPreservesMemberOrder(t *testing.T) {
	members := []models.Member{
		{ID: 3, Status: "Passiv"},
		{ID: 1, Status: "Aktiv"},
		{ID: 7, Status: "Gast"},
		{ID: 2, Status: "Inaktiv"},
	}

	payments := BuildPayments(discard(), members, nil, nil, DefaultStatuses)

	want := []int{3, 1, 2}
	if len(payments) != len(want) {
		t.Fatalf("expected %d payments, got %d", len(want), len(payments))
	}
	for i, id := range want {
		if payments[i].Member.ID != id {
			t.Errorf("position %d: expected member %d, got %d", i, id, payments[i].Member.ID)
		}
	}
}

func TestBuildPaymentsIndependentOfFeeOrder(t *testing.T) {
	members := []models.Member{
		{ID: 1, Status: "Aktiv"},
		{ID: 2, Status: "Aktiv"},
	}
	fees := []models.Fee{
		{MemberID: 2, Amount: decimal.NewFromInt(30)},
		{MemberID: 1, Amount: decimal.NewFromInt(50)},
	}

	payments := BuildPayments(discard(), members, fees, nil, DefaultStatuses)

	if payments[0].Member.ID != 1 || payments[1].Member.ID != 2 {
		t.Fatalf("member order must follow the member sheet, not the fee sheet")
	}
	if !payments[0].Fee.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("member 1 got fee %s, want 50", payments[0].Fee.Amount)
	}
	if !payments[1].Fee.Amount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("member 2 got fee %s, want 30", payments[1].Fee.Amount)
	}
}
