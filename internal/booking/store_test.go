package booking

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger", "booking_requests.json")
	store := NewFileStore(path)

	records := []BookingRequest{validRequest("BR-1", 11), validRequest("BR-2", 12)}
	require.NoError(t, store.Save(context.Background(), records))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestFileStoreMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrStoreMissing)
}

func TestFileStoreRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_requests.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestFileStoreRejectsWrongFieldType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_requests.json")
	doc := `[{"id":"BR-1","facility_id":"eleven","client_id":42,"pet_id":7,
		"client_name":"a","client_contact":"b","pet_name":"c",
		"services":["bath"],"status":"pending",
		"created_at":"2026-03-10T09:00:00Z","appointment_at":"2026-03-12T09:00:00Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestDocumentWithMissingPetNameRejectedWhole(t *testing.T) {
	good := validRequest("BR-1", 11)
	bad := validRequest("BR-2", 11)
	bad.PetName = ""

	err := ValidateDocument([]BookingRequest{good, bad})
	require.ErrorIs(t, err, ErrCorruptStore)

	// The ledger discards the whole document and seeds from defaults; no
	// partial import of the valid record.
	path := filepath.Join(t.TempDir(), "booking_requests.json")
	data, merr := EncodeDocument([]BookingRequest{good, bad})
	require.NoError(t, merr)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	seed := []BookingRequest{validRequest("BR-seed", 1)}
	ledger := Open(context.Background(), NewFileStore(path), seed, nil)
	defer ledger.Close()

	assert.Empty(t, ledger.ListByFacility(11))
	assert.Equal(t, 1, ledger.CountPending(1))
}

func TestValidateDocumentDuplicateIDs(t *testing.T) {
	err := ValidateDocument([]BookingRequest{validRequest("BR-1", 11), validRequest("BR-1", 12)})
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestValidateDocumentUnknownStatus(t *testing.T) {
	rec := validRequest("BR-1", 11)
	rec.Status = Status("archived")
	err := ValidateDocument([]BookingRequest{rec})
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestFileStoreLedgerRoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_requests.json")
	store := NewFileStore(path)

	ledger := Open(context.Background(), store, nil, nil)
	_, err := ledger.Create(context.Background(), validRequest("BR-1", 11))
	require.NoError(t, err)
	_, err = ledger.Create(context.Background(), validRequest("BR-2", 11))
	require.NoError(t, err)
	_, err = ledger.Transition(context.Background(), "BR-2", StatusAccepted)
	require.NoError(t, err)
	want := ledger.Snapshot()
	ledger.Close()

	reopened := Open(context.Background(), store, nil, nil)
	defer reopened.Close()
	assert.Equal(t, want, reopened.Snapshot())
}
