package models

import (
	"strings"
	"time"
)

// Mandate is a SEPA direct-debit authorization. The mandate reference is
// the record identity: a new reference means a new mandate.
type Mandate struct {
	ID              string
	MemberID        int
	AccountOwner    string
	IBAN            string
	BIC             string
	CreditInstitute string
	CreditorID      string
	IssueDate       time.Time
}

// Reference returns the SEPA mandate reference shown to the member.
func (m Mandate) Reference() string {
	return m.ID
}

// MaskedIBAN keeps the first and last three characters visible. Rendered
// output never carries the full IBAN.
func (m Mandate) MaskedIBAN() string {
	return mask(m.IBAN, 3, 3)
}

// MaskedBIC keeps the bank prefix (first six characters) visible.
func (m Mandate) MaskedBIC() string {
	return mask(m.BIC, 6, 0)
}

func mask(s string, head, tail int) string {
	if len(s) <= head+tail {
		return strings.Repeat("X", len(s))
	}
	return s[:head] + strings.Repeat("X", len(s)-head-tail) + s[len(s)-tail:]
}
