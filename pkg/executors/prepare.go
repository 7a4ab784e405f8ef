package executors

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/k0kubun/pp/v3"

	"github.com/feenotify/feenotify/pkg/batch"
	"github.com/feenotify/feenotify/pkg/billing"
	"github.com/feenotify/feenotify/pkg/format"
	"github.com/feenotify/feenotify/pkg/models"
	"github.com/feenotify/feenotify/pkg/workbook"
)

// PrepareOptions is the argument set of the prepare routine.
type PrepareOptions struct {
	Workbook     string
	OutDir       string
	Template     string
	Columns      string
	ValueDate    time.Time
	UpdateDate   time.Time
	ContactEmail string
	Debug        bool
}

// Prepare reads the workbook, assembles the bills, and writes the dated
// batch directory with one rendered notification per bill plus the
// manifest the send routine will consume.
func (e *Executor) Prepare(opts PrepareOptions) error {
	now := time.Now()
	if opts.ValueDate.Before(now.AddDate(0, 0, 14).Truncate(24 * time.Hour)) {
		return fmt.Errorf("value date %s must be at least two weeks ahead", format.ISODate(opts.ValueDate))
	}
	if opts.UpdateDate.After(opts.ValueDate) {
		return fmt.Errorf("update date %s must be at or before the value date %s",
			format.ISODate(opts.UpdateDate), format.ISODate(opts.ValueDate))
	}

	cols, err := workbook.LoadColumns(opts.Columns)
	if err != nil {
		return err
	}
	if opts.Debug {
		fmt.Fprintln(os.Stderr, pp.Sprint(cols))
	}

	e.logger.Info("reading workbook", "path", opts.Workbook)
	wb, err := workbook.Open(opts.Workbook)
	if err != nil {
		return err
	}
	defer wb.Close()

	members, err := workbook.ReadMembers(wb, cols)
	if err != nil {
		return err
	}
	fees, err := workbook.ReadFees(wb, cols)
	if err != nil {
		return err
	}
	mandates, err := workbook.ReadMandates(wb, cols)
	if err != nil {
		return err
	}
	e.logger.Info("workbook read", "members", len(members), "fees", len(fees), "mandates", len(mandates))

	payments := billing.BuildPayments(e.logger, members, fees, mandates, billing.DefaultStatuses)
	e.logger.Info("paying members", "count", len(payments))

	assembler := &billing.Assembler{}
	bills := make([]*models.Bill, 0, len(payments))
	for _, p := range payments {
		bill, err := assembler.Assemble(p, now, opts.ValueDate)
		if errors.Is(err, billing.ErrNoFee) {
			e.logger.Warn("skipping member without fee", "member_id", p.Member.ID, "name", p.Member.FullName())
			continue
		}
		if err != nil {
			return err
		}
		bills = append(bills, bill)
	}

	builder, err := batch.NewBuilder(e.logger, opts.Template)
	if err != nil {
		return err
	}
	dir, err := batch.Dir(opts.OutDir, now)
	if err != nil {
		return err
	}

	manifest, err := builder.Build(dir, bills, batch.Context{
		ValueDate:    opts.ValueDate,
		UpdateDate:   opts.UpdateDate,
		ContactEmail: opts.ContactEmail,
		Organization: e.config.Organization,
		Signature:    e.config.Signature,
	})
	if err != nil {
		return err
	}
	if err := batch.WriteManifest(dir, manifest); err != nil {
		return err
	}

	// The summary is a convenience artifact; a failure here does not
	// invalidate the batch.
	if err := batch.WriteSummaryPDF(dir, bills, assembler.FeeTotal, assembler.DonationTotal, opts.ValueDate); err != nil {
		e.logger.Warn("failed to write run summary", "error", err)
	}

	e.logger.Info("batch written",
		"dir", dir,
		"messages", manifest.Total,
		"skipped", assembler.Skipped,
		"render_failures", builder.Failed,
	)
	fmt.Printf("Beiträge: %s  Spenden: %s  Gesamt: %s\n",
		format.Currency(assembler.FeeTotal),
		format.Currency(assembler.DonationTotal),
		format.Currency(assembler.Total()),
	)
	return nil
}
