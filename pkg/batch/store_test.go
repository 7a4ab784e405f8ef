package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/feenotify/feenotify/pkg/models"
)

func sampleManifest() *models.Manifest {
	return &models.Manifest{
		BatchID:      "b3b1e1a0-0000-0000-0000-000000000000",
		CreatedAt:    "2022-03-01",
		ContactEmail: "schatzmeister@jubo.info",
		ValueDate:    "2022-03-15",
		UpdateDate:   "2022-03-08",
		Messages: []models.Message{
			{
				File:    "notification_1.html",
				Member:  models.MemberSnapshot{ID: 1, FirstName: "Anna", LastName: "Muster", Email: "anna@example.org"},
				Mandate: models.MandateSnapshot{Reference: "200001"},
				Amounts: models.AmountSnapshot{Fee: "50.00", Donation: "10.00", Total: "60.00"},
			},
		},
		Total: 1,
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir, sampleManifest()); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if len(got.Messages) != got.Total {
		t.Errorf("round trip broke the total invariant: %d != %d", len(got.Messages), got.Total)
	}
	if got.Messages[0].Member.Email != "anna@example.org" {
		t.Errorf("snapshot lost: %+v", got.Messages[0])
	}
	if got.Messages[0].Mandate.Reference != "200001" {
		t.Errorf("mandate reference lost: %+v", got.Messages[0].Mandate)
	}
	if got.Messages[0].Amounts.Total != "60.00" {
		t.Errorf("amount snapshot lost: %+v", got.Messages[0].Amounts)
	}
}

func TestReadManifestNotFound(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	if !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("expected ErrManifestNotFound, got %v", err)
	}
}

func TestReadManifestCorruptJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, models.ManifestFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadManifest(dir)
	if !errors.Is(err, models.ErrCorruptManifest) {
		t.Errorf("expected ErrCorruptManifest, got %v", err)
	}
}

func TestReadManifestTotalMismatch(t *testing.T) {
	dir := t.TempDir()
	data := `{"batchId":"x","messages":[{"file":"notification_1.html"}],"total":5}`
	if err := os.WriteFile(filepath.Join(dir, models.ManifestFile), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadManifest(dir)
	if !errors.Is(err, models.ErrCorruptManifest) {
		t.Errorf("expected ErrCorruptManifest for total mismatch, got %v", err)
	}
}

func TestReadManifestEmptyIsValid(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir, &models.Manifest{Messages: []models.Message{}}); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	manifest, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("an empty manifest is a valid state: %v", err)
	}
	if manifest.Total != 0 {
		t.Errorf("Total = %d, want 0", manifest.Total)
	}
}

func TestWriteManifestOverwrites(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir, sampleManifest()); err != nil {
		t.Fatal(err)
	}

	second := sampleManifest()
	second.Messages[0].SentAt = "2022-03-16T10:00:00Z"
	if err := WriteManifest(dir, second); err != nil {
		t.Fatal(err)
	}

	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Messages[0].SentAt == "" {
		t.Error("rewrite did not persist the sent marker")
	}
}
