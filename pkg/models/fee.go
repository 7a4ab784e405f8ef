package models

import "github.com/shopspring/decimal"

// Fee carries the yearly amounts owed by one member. Blank cells in the
// source sheet coerce to zero when the record is read, so both amounts
// are always valid decimals.
type Fee struct {
	MemberID int
	Amount   decimal.Decimal
	Donation decimal.Decimal
}

func (f Fee) Total() decimal.Decimal {
	return f.Amount.Add(f.Donation)
}
