package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a single line item on a bill.
type Position struct {
	Description string
	Amount      decimal.Decimal
}

// Bill is the per-member statement for one billing run. It is assembled
// once and only rendered afterwards, never mutated.
type Bill struct {
	Member       Member
	Mandate      *Mandate // nil when no SEPA mandate matched
	Positions    []Position
	CreationDate time.Time
	ValueDate    time.Time
}

func (b Bill) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Positions {
		total = total.Add(p.Amount)
	}
	return total
}
