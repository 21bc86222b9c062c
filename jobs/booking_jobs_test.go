package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigitariaWebs/puneet-sub015/internal/booking"
	_ "github.com/DigitariaWebs/puneet-sub015/testing"
)

type stubStore struct {
	records []booking.BookingRequest
	loadErr error
	saves   int
}

func (s *stubStore) Load(ctx context.Context) ([]booking.BookingRequest, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.records, nil
}

func (s *stubStore) Save(ctx context.Context, records []booking.BookingRequest) error {
	s.records = records
	s.saves++
	return nil
}

func seedRecord(id string) booking.BookingRequest {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return booking.BookingRequest{
		ID:            id,
		FacilityID:    1,
		ClientID:      1,
		ClientName:    "Ana",
		ClientContact: "ana@example.com",
		PetID:         1,
		PetName:       "Rex",
		Services:      []string{"bath"},
		Status:        booking.StatusPending,
		CreatedAt:     created,
		AppointmentAt: created.Add(time.Hour),
	}
}

func TestSnapshotHandlerRewritesStore(t *testing.T) {
	store := &stubStore{records: []booking.BookingRequest{seedRecord("BR-1")}}
	handler := NewBookingSnapshotHandler(store, nil)

	require.NoError(t, handler(context.Background(), NewBookingSnapshotTask()))
	assert.Equal(t, 1, store.saves)
}

func TestSnapshotHandlerSkipsEmptyStore(t *testing.T) {
	store := &stubStore{loadErr: booking.ErrStoreMissing}
	handler := NewBookingSnapshotHandler(store, nil)

	require.NoError(t, handler(context.Background(), NewBookingSnapshotTask()))
	assert.Zero(t, store.saves)
}

func TestSnapshotHandlerPropagatesLoadFailure(t *testing.T) {
	store := &stubStore{loadErr: errors.New("io failure")}
	handler := NewBookingSnapshotHandler(store, nil)

	assert.Error(t, handler(context.Background(), NewBookingSnapshotTask()))
}

func TestIntegrityHandlerCountsViolations(t *testing.T) {
	bad := seedRecord("BR-2")
	bad.Services = nil
	store := &stubStore{records: []booking.BookingRequest{seedRecord("BR-1"), bad}}
	handler := NewBookingIntegrityHandler(store, nil)

	// Violations are logged, never returned as task failure.
	require.NoError(t, handler(context.Background(), NewBookingIntegrityTask()))
	assert.Zero(t, store.saves)
}

func TestIntegrityHandlerToleratesCorruptStore(t *testing.T) {
	store := &stubStore{loadErr: booking.ErrCorruptStore}
	handler := NewBookingIntegrityHandler(store, nil)
	require.NoError(t, handler(context.Background(), NewBookingIntegrityTask()))
}
