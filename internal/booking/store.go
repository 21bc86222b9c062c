package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the persistence port for the ledger. The full record
// collection is the unit of durability: Save replaces everything, Load
// returns everything. Implementations report ErrStoreMissing when no
// content exists yet and ErrCorruptStore when stored content fails
// structural validation.
type Store interface {
	Load(ctx context.Context) ([]BookingRequest, error)
	Save(ctx context.Context, records []BookingRequest) error
}

// ValidateDocument checks every record of a persisted document. A single
// malformed record rejects the whole document; partially valid documents
// are never admitted.
func ValidateDocument(records []BookingRequest) error {
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if err := validateStored(rec); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrCorruptStore, i, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return fmt.Errorf("%w: record %d: duplicate id %s", ErrCorruptStore, i, rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}
	return nil
}

// validateStored holds stored records to a stricter bar than inserts: the
// denormalized identity fields must have survived serialization too.
func validateStored(rec BookingRequest) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if !rec.Status.IsValid() {
		return fmt.Errorf("unknown status %q", rec.Status)
	}
	if rec.ClientName == "" {
		return errors.New("missing client name")
	}
	if rec.PetName == "" {
		return errors.New("missing pet name")
	}
	return nil
}

// DecodeDocument parses and validates a persisted JSON document.
func DecodeDocument(data []byte) ([]BookingRequest, error) {
	var records []BookingRequest
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if err := ValidateDocument(records); err != nil {
		return nil, err
	}
	return records, nil
}

// EncodeDocument serializes the record collection for persistence.
func EncodeDocument(records []BookingRequest) ([]byte, error) {
	if records == nil {
		records = []BookingRequest{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// FileStore persists the ledger as a single JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore builds a store writing to path. The parent directory is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and validates the persisted document.
func (s *FileStore) Load(ctx context.Context) ([]BookingRequest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrStoreMissing
		}
		return nil, fmt.Errorf("booking: read store: %w", err)
	}
	return DecodeDocument(data)
}

// Save atomically replaces the persisted document via a temp file rename,
// so a crash mid-write never corrupts earlier state.
func (s *FileStore) Save(ctx context.Context, records []BookingRequest) error {
	data, err := EncodeDocument(records)
	if err != nil {
		return fmt.Errorf("booking: encode store: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("booking: create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("booking: create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("booking: write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("booking: close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("booking: replace store: %w", err)
	}
	return nil
}
