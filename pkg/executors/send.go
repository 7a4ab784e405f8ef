package executors

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/batch"
	"github.com/feenotify/feenotify/pkg/format"
	"github.com/feenotify/feenotify/pkg/mail"
	"github.com/feenotify/feenotify/pkg/models"
)

// SendOptions is the argument set of the send routine.
type SendOptions struct {
	Dir   string
	Force bool
}

var (
	sentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// Send reconstructs one message per manifest entry from the batch
// directory and delivers them in manifest order. Entries already
// carrying a sent marker are skipped unless Force is set; every
// successful delivery stamps its entry and rewrites the manifest, so an
// interrupted run resumes where it stopped.
func (e *Executor) Send(opts SendOptions) error {
	manifest, err := batch.ReadManifest(opts.Dir)
	if err != nil {
		return err
	}
	if manifest.Total == 0 {
		e.logger.Info("manifest contains no messages, nothing to send")
		return nil
	}

	valueDate, err := time.Parse("2006-01-02", manifest.ValueDate)
	if err != nil {
		return fmt.Errorf("%w: invalid value date %q", models.ErrCorruptManifest, manifest.ValueDate)
	}

	if err := e.config.ValidateMail(); err != nil {
		return err
	}

	pending := 0
	for _, msg := range manifest.Messages {
		line := previewLine(msg)
		if msg.SentAt != "" && !opts.Force {
			fmt.Println(sentStyle.Render("= " + line + "  (sent " + msg.SentAt + ")"))
			continue
		}
		fmt.Println(pendingStyle.Render("+ " + line))
		pending++
	}
	feeTotal, donationTotal := grandTotals(manifest.Messages)
	fmt.Printf("Beiträge: %s  Spenden: %s  Gesamt: %s\n",
		format.Currency(feeTotal),
		format.Currency(donationTotal),
		format.Currency(feeTotal.Add(donationTotal)),
	)
	if pending == 0 {
		e.logger.Info("all manifest entries already sent, use --force to resend")
		return nil
	}

	ok, err := e.confirm(fmt.Sprintf("Send %d message(s) as %s? [y/N] ", pending, e.config.Mail.User))
	if err != nil {
		return err
	}
	if !ok {
		e.logger.Info("send cancelled, no messages delivered")
		return nil
	}

	transport, err := e.dial(mail.Account{
		User:     e.config.Mail.User,
		Password: e.config.Mail.Password,
		IMAPHost: e.config.Mail.IMAP.Host,
		IMAPPort: e.config.Mail.IMAP.Port,
		SMTPHost: e.config.Mail.SMTP.Host,
		SMTPPort: e.config.Mail.SMTP.Port,
	})
	if err != nil {
		return fmt.Errorf("mail session failed: %w", err)
	}
	defer transport.Close()

	var sent, failed, skipped int
	for i := range manifest.Messages {
		entry := &manifest.Messages[i]
		if entry.SentAt != "" && !opts.Force {
			skipped++
			continue
		}

		body, err := os.ReadFile(filepath.Join(opts.Dir, entry.File))
		if err != nil {
			failed++
			e.logger.Error("missing notification document", "file", entry.File, "error", err)
			continue
		}

		msg := mail.Message{
			Sender:    e.config.Mail.User,
			Recipient: entry.Member.Email,
			Subject:   subject(e.config.Organization, valueDate.Year(), entry.Member),
			Body:      string(body),
		}
		e.logger.Info("sending notification", "member_id", entry.Member.ID, "recipient", entry.Member.Email)
		if err := transport.Send(msg); err != nil {
			failed++
			e.logger.Error("delivery failed", "recipient", entry.Member.Email, "error", err)
			continue
		}

		entry.SentAt = time.Now().Format(time.RFC3339)
		sent++
		if err := batch.WriteManifest(opts.Dir, manifest); err != nil {
			return fmt.Errorf("failed to record sent marker: %w", err)
		}
	}

	e.logger.Info("send finished", "sent", sent, "failed", failed, "skipped", skipped)
	return nil
}

func subject(org string, year int, m models.MemberSnapshot) string {
	return fmt.Sprintf("%s | Mitgliedsbeitrag %d & Datenaktualisierung | Mitglied Nr. M%d %s %s",
		org, year, m.ID, m.FirstName, m.LastName)
}

func previewLine(msg models.Message) string {
	return fmt.Sprintf("M%-5d | %-25s | %-30s | %12s | %12s | %12s | %s",
		msg.Member.ID, msg.Member.FirstName+" "+msg.Member.LastName, msg.Member.Email,
		displayAmount(msg.Amounts.Fee), displayAmount(msg.Amounts.Donation), displayAmount(msg.Amounts.Total),
		msg.File)
}

func displayAmount(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return format.Currency(d)
}

// grandTotals sums the amount snapshots across all manifest entries.
// Entries without a parseable snapshot contribute nothing.
func grandTotals(messages []models.Message) (fee, donation decimal.Decimal) {
	for _, msg := range messages {
		if d, err := decimal.NewFromString(msg.Amounts.Fee); err == nil {
			fee = fee.Add(d)
		}
		if d, err := decimal.NewFromString(msg.Amounts.Donation); err == nil {
			donation = donation.Add(d)
		}
	}
	return fee, donation
}
