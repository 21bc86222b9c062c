package booking

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingRequestsSchema = `
CREATE TABLE IF NOT EXISTS booking_requests (
	id             TEXT PRIMARY KEY,
	facility_id    BIGINT NOT NULL,
	client_id      BIGINT NOT NULL,
	client_name    TEXT NOT NULL,
	client_contact TEXT NOT NULL,
	pet_id         BIGINT NOT NULL,
	pet_name       TEXT NOT NULL,
	services       TEXT[] NOT NULL,
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	appointment_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps the ledger in a booking_requests table. Save
// replaces the full table content in one transaction, preserving the
// document-as-unit-of-durability contract of the Store port.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds a store over the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, bookingRequestsSchema); err != nil {
		return fmt.Errorf("booking: ensure schema: %w", err)
	}
	return nil
}

// Load reads and validates the full table content. An empty table reads
// as missing content: the ledger never deletes records, so zero rows
// means nothing was ever saved.
func (s *PostgresStore) Load(ctx context.Context) ([]BookingRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, facility_id, client_id, client_name, client_contact,
		       pet_id, pet_name, services, status, created_at, appointment_at
		FROM booking_requests
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("booking: read postgres store: %w", err)
	}
	defer rows.Close()

	var records []BookingRequest
	for rows.Next() {
		var rec BookingRequest
		var status string
		if err := rows.Scan(
			&rec.ID, &rec.FacilityID, &rec.ClientID, &rec.ClientName, &rec.ClientContact,
			&rec.PetID, &rec.PetName, &rec.Services, &status, &rec.CreatedAt, &rec.AppointmentAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrCorruptStore, err)
		}
		rec.Status = Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking: read postgres store: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrStoreMissing
	}
	if err := ValidateDocument(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Save replaces the full table content in one transaction.
func (s *PostgresStore) Save(ctx context.Context, records []BookingRequest) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("booking: begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM booking_requests`); err != nil {
		return fmt.Errorf("booking: clear store: %w", err)
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO booking_requests
				(id, facility_id, client_id, client_name, client_contact,
				 pet_id, pet_name, services, status, created_at, appointment_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			rec.ID, rec.FacilityID, rec.ClientID, rec.ClientName, rec.ClientContact,
			rec.PetID, rec.PetName, rec.Services, string(rec.Status), rec.CreatedAt, rec.AppointmentAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("booking: write store: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("booking: commit save: %w", err)
	}
	return nil
}
