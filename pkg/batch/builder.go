package batch

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/config"
	"github.com/feenotify/feenotify/pkg/format"
	"github.com/feenotify/feenotify/pkg/models"
)

//go:embed templates/message.html.tmpl
var defaultTemplate string

// Context carries the per-run values every message is rendered with.
type Context struct {
	ValueDate    time.Time
	UpdateDate   time.Time
	ContactEmail string
	Organization string
	Signature    config.Signature
}

// Builder renders bills into a batch directory and collects manifest
// entries for everything that rendered successfully.
type Builder struct {
	logger   *log.Logger
	template *template.Template

	// Failed counts bills excluded from the manifest because their
	// document did not render.
	Failed int
}

// NewBuilder loads the message template. An empty path selects the
// embedded default.
func NewBuilder(logger *log.Logger, templatePath string) (*Builder, error) {
	text := defaultTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		text = string(data)
	}

	tmpl, err := template.New("message").Funcs(template.FuncMap{
		"currency": format.Currency,
		"date":     format.Date,
		"inc":      func(i int) int { return i + 1 },
		"safe":     func(s string) template.HTML { return template.HTML(s) },
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Builder{logger: logger, template: tmpl}, nil
}

// Dir returns the dated batch directory for a run, creating it when
// missing. Re-running prepare on the same day reuses the directory and
// overwrites that day's batch.
func Dir(outdir string, runDate time.Time) (string, error) {
	dir := filepath.Join(outdir, format.ISODate(runDate))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create batch directory: %w", err)
	}
	return dir, nil
}

// Build renders every bill into dir and returns the manifest covering
// the documents that were written. File names derive from the member id
// only, so a member's document is overwritten, never duplicated. A bill
// that fails to render is counted and left out of the manifest; the rest
// of the batch carries on. Write failures are fatal, the directory is
// not usable.
func (b *Builder) Build(dir string, bills []*models.Bill, ctx Context) (*models.Manifest, error) {
	manifest := &models.Manifest{
		BatchID:      uuid.NewString(),
		CreatedAt:    format.ISODate(time.Now()),
		ContactEmail: ctx.ContactEmail,
		ValueDate:    format.ISODate(ctx.ValueDate),
		UpdateDate:   format.ISODate(ctx.UpdateDate),
		Messages:     []models.Message{},
	}

	for _, bill := range bills {
		name := fmt.Sprintf("notification_%d.html", bill.Member.ID)

		var buf bytes.Buffer
		err := b.template.Execute(&buf, map[string]any{
			"Bill":         bill,
			"UpdateDate":   ctx.UpdateDate,
			"ContactEmail": ctx.ContactEmail,
			"Organization": ctx.Organization,
			"Signature":    ctx.Signature,
		})
		if err != nil {
			b.Failed++
			b.logger.Error("failed to render notification", "member_id", bill.Member.ID, "error", err)
			continue
		}

		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}

		fee := decimal.Zero
		if len(bill.Positions) > 0 {
			fee = bill.Positions[0].Amount
		}
		total := bill.Total()

		entry := models.Message{
			File: name,
			Member: models.MemberSnapshot{
				ID:        bill.Member.ID,
				FirstName: bill.Member.FirstName,
				LastName:  bill.Member.LastName,
				Email:     bill.Member.Email,
			},
			Amounts: models.AmountSnapshot{
				Fee:      fee.StringFixed(2),
				Donation: total.Sub(fee).StringFixed(2),
				Total:    total.StringFixed(2),
			},
		}
		if bill.Mandate != nil {
			entry.Mandate.Reference = bill.Mandate.Reference()
		}
		manifest.Messages = append(manifest.Messages, entry)
	}

	manifest.Total = len(manifest.Messages)
	return manifest, nil
}
