package workbook

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Columns describes the workbook layout: sheet names, the header row,
// and the header-text to field tables for each record type. The defaults
// match the club's workbook; a YAML file can override any part.
type Columns struct {
	MemberSheet  string            `yaml:"memberSheet"`
	FinanceSheet string            `yaml:"financeSheet"`
	HeaderRow    int               `yaml:"headerRow"`
	Members      map[string]string `yaml:"members"`
	Fees         map[string]string `yaml:"fees"`
	Mandates     map[string]string `yaml:"mandates"`
}

// DefaultColumns returns the built-in layout.
func DefaultColumns() Columns {
	return Columns{
		MemberSheet:  "Mitglieder",
		FinanceSheet: "Finanzen",
		HeaderRow:    1,
		Members: map[string]string{
			"ID":             "id",
			"Anrede":         "salutation",
			"Vorname":        "first_name",
			"Nachname":       "last_name",
			"E-Mail":         "email",
			"Status":         "status",
			"Mitgliedschaft": "membership",
		},
		Fees: map[string]string{
			"MitgliedsNr.": "member_id",
			"Beitrag":      "amount",
			"Spende":       "donation",
		},
		Mandates: map[string]string{
			"Referenz":       "reference",
			"MitgliedsNr.":   "member_id",
			"Kontoinhaber":   "account_owner",
			"IBAN":           "iban",
			"BIC":            "bic",
			"Kreditinstitut": "credit_institute",
			"Gläubiger-ID":   "creditor_id",
			"Erteilt Am":     "issue_date",
		},
	}
}

// LoadColumns reads a YAML override on top of the defaults. Only the
// sections present in the file replace their default counterpart.
func LoadColumns(path string) (Columns, error) {
	cols := DefaultColumns()
	if path == "" {
		return cols, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cols, fmt.Errorf("failed to read column config: %w", err)
	}
	var override Columns
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cols, fmt.Errorf("failed to parse column config: %w", err)
	}

	if override.MemberSheet != "" {
		cols.MemberSheet = override.MemberSheet
	}
	if override.FinanceSheet != "" {
		cols.FinanceSheet = override.FinanceSheet
	}
	if override.HeaderRow > 0 {
		cols.HeaderRow = override.HeaderRow
	}
	if len(override.Members) > 0 {
		cols.Members = override.Members
	}
	if len(override.Fees) > 0 {
		cols.Fees = override.Fees
	}
	if len(override.Mandates) > 0 {
		cols.Mandates = override.Mandates
	}
	return cols, nil
}
