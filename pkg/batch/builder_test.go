package batch

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/feenotify/feenotify/pkg/config"
	"github.com/feenotify/feenotify/pkg/models"
)

var testContext = Context{
	ValueDate:    time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
	UpdateDate:   time.Date(2022, 3, 8, 0, 0, 0, 0, time.UTC),
	ContactEmail: "schatzmeister@jubo.info",
	Organization: "JuBO e.V.",
	Signature: config.Signature{
		Name: "Erika Muster", Role: "Schatzmeisterin",
		Email: "schatzmeister@jubo.info", Phone: "+49 170 0000000",
	},
}

func testBills() []*models.Bill {
	mandate := &models.Mandate{
		ID: "200001", MemberID: 1, AccountOwner: "Anna Muster",
		IBAN: "DE02120300000000202051", BIC: "BYLADEM1001",
		CreditorID: "DE98ZZZ09999999999",
	}
	return []*models.Bill{
		{
			Member:  models.Member{ID: 1, Salutation: "Frau", FirstName: "Anna", LastName: "Muster", Email: "anna@example.org", Membership: "Ordentlich"},
			Mandate: mandate,
			Positions: []models.Position{
				{Description: "Jahresbeitrag Mitgliedschaft (Ordentlich)", Amount: decimal.NewFromInt(50)},
				{Description: "Zusätzliche Spende", Amount: decimal.NewFromInt(10)},
			},
			CreationDate: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
			ValueDate:    testContext.ValueDate,
		},
		{
			Member: models.Member{ID: 2, Salutation: "Herr", FirstName: "Bernd", LastName: "Beispiel", Email: "bernd@example.org", Membership: "Ordentlich"},
			Positions: []models.Position{
				{Description: "Jahresbeitrag Mitgliedschaft (Ordentlich)", Amount: decimal.NewFromInt(30)},
			},
			CreationDate: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
			ValueDate:    testContext.ValueDate,
		},
	}
}

func TestBuildWritesDocumentsAndManifest(t *testing.T) {
	builder, err := NewBuilder(log.New(io.Discard), "")
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	dir := t.TempDir()
	manifest, err := builder.Build(dir, testBills(), testContext)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if manifest.Total != 2 {
		t.Fatalf("Total = %d, want 2", manifest.Total)
	}
	if manifest.BatchID == "" {
		t.Error("manifest must carry a batch id")
	}
	if manifest.ValueDate != "2022-03-15" || manifest.UpdateDate != "2022-03-08" {
		t.Errorf("dates = %q / %q", manifest.ValueDate, manifest.UpdateDate)
	}

	// Every manifest entry resolves to an existing document.
	for _, msg := range manifest.Messages {
		data, err := os.ReadFile(filepath.Join(dir, msg.File))
		if err != nil {
			t.Fatalf("manifest entry %s has no document: %v", msg.File, err)
		}
		if !strings.Contains(string(data), msg.Member.FirstName) {
			t.Errorf("document %s does not mention %s", msg.File, msg.Member.FirstName)
		}
	}

	// Mandate-less bills render the fallback, never a raw reference.
	second, _ := os.ReadFile(filepath.Join(dir, "notification_2.html"))
	if !strings.Contains(string(second), "kein SEPA-Lastschriftmandat") {
		t.Error("mandate-less document must carry the fallback text")
	}
	if manifest.Messages[1].Mandate.Reference != "" {
		t.Errorf("mandate-less entry has reference %q", manifest.Messages[1].Mandate.Reference)
	}

	// Amount snapshots carry fee, donation and total per entry.
	amounts := manifest.Messages[0].Amounts
	if amounts.Fee != "50.00" || amounts.Donation != "10.00" || amounts.Total != "60.00" {
		t.Errorf("amounts = %+v, want 50.00/10.00/60.00", amounts)
	}
	amounts = manifest.Messages[1].Amounts
	if amounts.Fee != "30.00" || amounts.Donation != "0.00" || amounts.Total != "30.00" {
		t.Errorf("amounts = %+v, want 30.00/0.00/30.00", amounts)
	}

	// Full bank data never appears in rendered output.
	first, _ := os.ReadFile(filepath.Join(dir, "notification_1.html"))
	if strings.Contains(string(first), "DE02120300000000202051") {
		t.Error("full IBAN leaked into rendered output")
	}
	if !strings.Contains(string(first), "DE0XXXXXXXXXXXXXXXX051") {
		t.Error("masked IBAN missing from rendered output")
	}
}

func TestBuildIsIdempotentPerDay(t *testing.T) {
	builder, err := NewBuilder(log.New(io.Discard), "")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	first, err := builder.Build(dir, testBills(), testContext)
	if err != nil {
		t.Fatal(err)
	}
	second, err := builder.Build(dir, testBills(), testContext)
	if err != nil {
		t.Fatal(err)
	}

	if first.Total != second.Total {
		t.Errorf("totals differ between runs: %d vs %d", first.Total, second.Total)
	}
	for i := range first.Messages {
		if first.Messages[i].File != second.Messages[i].File {
			t.Errorf("file names differ between runs: %q vs %q", first.Messages[i].File, second.Messages[i].File)
		}
	}

	entries, _ := os.ReadDir(dir)
	var docs int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "notification_") {
			docs++
		}
	}
	if docs != 2 {
		t.Errorf("expected 2 documents after re-run, got %d", docs)
	}
}

func TestBuildSkipsFailedRenders(t *testing.T) {
	// A template that assumes a mandate fails for mandate-less bills.
	path := filepath.Join(t.TempDir(), "strict.html.tmpl")
	if err := os.WriteFile(path, []byte(`{{.Bill.Mandate.Reference}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	builder, err := NewBuilder(log.New(io.Discard), path)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	manifest, err := builder.Build(dir, testBills(), testContext)
	if err != nil {
		t.Fatalf("a per-bill render failure must not abort the batch: %v", err)
	}

	if builder.Failed != 1 {
		t.Errorf("Failed = %d, want 1", builder.Failed)
	}
	if manifest.Total != 1 {
		t.Errorf("Total = %d, want 1", manifest.Total)
	}
	if manifest.Messages[0].Member.ID != 1 {
		t.Errorf("surviving entry should be member 1, got %d", manifest.Messages[0].Member.ID)
	}
}

func TestDirIsDated(t *testing.T) {
	out := t.TempDir()
	runDate := time.Date(2022, 3, 1, 10, 30, 0, 0, time.UTC)

	dir, err := Dir(out, runDate)
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if filepath.Base(dir) != "2022-03-01" {
		t.Errorf("batch dir = %q, want dated name", dir)
	}

	// Same day resolves to the same directory.
	again, err := Dir(out, runDate.Add(4*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if again != dir {
		t.Errorf("same-day runs must share a directory: %q vs %q", dir, again)
	}
}
