package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/models"
)

// ReadMembers loads the member sheet in row order.
func ReadMembers(wb Workbook, cols Columns) ([]models.Member, error) {
	recs, err := records(wb, cols.MemberSheet, cols.HeaderRow, cols.Members)
	if err != nil {
		return nil, err
	}

	members := make([]models.Member, 0, len(recs))
	for i, rec := range recs {
		id, err := parseID(rec["id"])
		if err != nil {
			return nil, fmt.Errorf("member row %d: %w", i+cols.HeaderRow+1, err)
		}
		members = append(members, models.Member{
			ID:         id,
			Salutation: rec["salutation"],
			FirstName:  rec["first_name"],
			LastName:   rec["last_name"],
			Email:      rec["email"],
			Status:     rec["status"],
			Membership: rec["membership"],
		})
	}
	return members, nil
}

// ReadFees loads fee rows from the finance sheet. Blank amount and
// donation cells coerce to zero, they are not errors.
func ReadFees(wb Workbook, cols Columns) ([]models.Fee, error) {
	recs, err := records(wb, cols.FinanceSheet, cols.HeaderRow, cols.Fees)
	if err != nil {
		return nil, err
	}

	fees := make([]models.Fee, 0, len(recs))
	for i, rec := range recs {
		id, err := parseID(rec["member_id"])
		if err != nil {
			return nil, fmt.Errorf("fee row %d: %w", i+cols.HeaderRow+1, err)
		}
		amount, err := parseAmount(rec["amount"])
		if err != nil {
			return nil, fmt.Errorf("fee row %d: %w", i+cols.HeaderRow+1, err)
		}
		donation, err := parseAmount(rec["donation"])
		if err != nil {
			return nil, fmt.Errorf("fee row %d: %w", i+cols.HeaderRow+1, err)
		}
		fees = append(fees, models.Fee{MemberID: id, Amount: amount, Donation: donation})
	}
	return fees, nil
}

// ReadMandates loads SEPA mandate rows from the finance sheet. Rows
// without a reference are skipped: no reference, no mandate.
func ReadMandates(wb Workbook, cols Columns) ([]models.Mandate, error) {
	recs, err := records(wb, cols.FinanceSheet, cols.HeaderRow, cols.Mandates)
	if err != nil {
		return nil, err
	}

	mandates := make([]models.Mandate, 0, len(recs))
	for i, rec := range recs {
		reference := rec["reference"]
		if reference == "" {
			continue
		}
		id, err := parseID(rec["member_id"])
		if err != nil {
			return nil, fmt.Errorf("mandate row %d: %w", i+cols.HeaderRow+1, err)
		}
		// Issue date is display-only, tolerate blanks and odd formats.
		issued, err := parseDate(rec["issue_date"])
		if err != nil {
			issued = time.Time{}
		}
		mandates = append(mandates, models.Mandate{
			ID:              reference,
			MemberID:        id,
			AccountOwner:    rec["account_owner"],
			IBAN:            strings.ReplaceAll(rec["iban"], " ", ""),
			BIC:             rec["bic"],
			CreditInstitute: rec["credit_institute"],
			CreditorID:      rec["creditor_id"],
			IssueDate:       issued,
		})
	}
	return mandates, nil
}

func parseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	// Numeric cells may come back as floats ("17.0").
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0, fmt.Errorf("missing member id")
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid member id %q", s)
	}
	return id, nil
}

// parseAmount accepts plain and German decimal notation ("1.234,56").
// Blank cells coerce to zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "€"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"02.01.2006", "2006-01-02", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
