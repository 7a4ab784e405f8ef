package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/feenotify/feenotify/pkg/models"
)

// ErrManifestNotFound reports a batch directory without a manifest.
var ErrManifestNotFound = errors.New("manifest not found")

// WriteManifest writes metadata.json atomically: the content is staged
// next to its final location and renamed into place, so a failed write
// leaves any prior manifest untouched.
func WriteManifest(dir string, manifest *models.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	tmp, err := os.CreateTemp(dir, models.ManifestFile+".*")
	if err != nil {
		return fmt.Errorf("failed to stage manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, models.ManifestFile)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads and validates metadata.json from a batch directory.
// A manifest with zero messages is a valid empty state; a missing file
// and a total that disagrees with the message list are distinct errors.
func ReadManifest(dir string) (*models.Manifest, error) {
	path := filepath.Join(dir, models.ManifestFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest models.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCorruptManifest, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}
