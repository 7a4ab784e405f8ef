package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/models"
)

// ErrNoFee marks a payment that cannot be billed because the finance
// sheet has no fee row for the member. Callers skip the payment and
// report it; the run continues.
var ErrNoFee = errors.New("payment has no fee")

// Assembler turns payments into bills and keeps running totals for the
// end-of-run report. The totals are aggregates only, never part of a
// bill.
type Assembler struct {
	FeeTotal      decimal.Decimal
	DonationTotal decimal.Decimal
	Skipped       int
}

// Assemble produces the bill for one payment. The fee position always
// comes first with the billing period bound to the value date's year; a
// donation position is appended only for donations strictly above zero.
// A missing mandate is tolerated here, the bill just carries nil.
func (a *Assembler) Assemble(p *models.Payment, creationDate, valueDate time.Time) (*models.Bill, error) {
	if p.Fee == nil {
		a.Skipped++
		return nil, fmt.Errorf("member %d (%s): %w", p.Member.ID, p.Member.FullName(), ErrNoFee)
	}

	year := valueDate.Year()
	positions := []models.Position{{
		Description: fmt.Sprintf(
			"Jahresbeitrag Mitgliedschaft (%s)<br/><small>Für den Zeitraum 01.01.%d - 31.12.%d</small>",
			p.Member.Membership, year, year,
		),
		Amount: p.Fee.Amount,
	}}
	if p.Fee.Donation.IsPositive() {
		positions = append(positions, models.Position{
			Description: "Zusätzliche Spende",
			Amount:      p.Fee.Donation,
		})
	}

	a.FeeTotal = a.FeeTotal.Add(p.Fee.Amount)
	a.DonationTotal = a.DonationTotal.Add(p.Fee.Donation)

	return &models.Bill{
		Member:       p.Member,
		Mandate:      p.Mandate,
		Positions:    positions,
		CreationDate: creationDate,
		ValueDate:    valueDate,
	}, nil
}

// Total is the grand total over all assembled bills.
func (a *Assembler) Total() decimal.Decimal {
	return a.FeeTotal.Add(a.DonationTotal)
}
