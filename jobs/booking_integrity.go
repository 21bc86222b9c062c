package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/DigitariaWebs/puneet-sub015/internal/booking"
)

// NewBookingIntegrityHandler scans persisted records for invariant
// violations. Findings are logged for operators; the scan never mutates
// the store.
func NewBookingIntegrityHandler(store booking.Store, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		records, err := store.Load(ctx)
		if err != nil {
			if errors.Is(err, booking.ErrStoreMissing) {
				return nil
			}
			if errors.Is(err, booking.ErrCorruptStore) {
				if logger != nil {
					logger.Error("booking store corrupt", slog.Any("error", err))
				}
				return nil
			}
			return err
		}

		violations := 0
		for _, rec := range records {
			if verr := rec.Validate(); verr != nil {
				violations++
				if logger != nil {
					logger.Warn("booking record invalid",
						slog.String("id", rec.ID), slog.Any("error", verr))
				}
				continue
			}
			if !rec.Status.IsValid() {
				violations++
				if logger != nil {
					logger.Warn("booking record has unknown status",
						slog.String("id", rec.ID), slog.String("status", string(rec.Status)))
				}
			}
		}
		if logger != nil {
			logger.Info("booking integrity scan finished",
				slog.Int("records", len(records)), slog.Int("violations", violations))
		}
		return nil
	}
}
