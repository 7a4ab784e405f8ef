// Package format holds the explicit display formatters used across the
// pipeline. Formatting is plain functions taking a value; no process-wide
// locale state is ever set.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency renders an amount in German convention: dot as thousands
// separator, comma as decimal separator, trailing euro sign.
func Currency(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac + " €"
	if neg {
		out = "-" + out
	}
	return out
}

// Date renders a date as dd.mm.yyyy.
func Date(t time.Time) string {
	return t.Format("02.01.2006")
}

// ISODate renders a date as yyyy-MM-dd, the form used for manifest
// fields and batch directory names.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
