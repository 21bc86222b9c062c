package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/DigitariaWebs/puneet-sub015/internal/booking"
)

// NewBookingSnapshotHandler re-persists the full ledger document. The
// console's save path is fire-and-forget and lossy by contract; the
// periodic snapshot compacts and re-validates whatever it left behind.
func NewBookingSnapshotHandler(store booking.Store, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		records, err := store.Load(ctx)
		if err != nil {
			if errors.Is(err, booking.ErrStoreMissing) {
				if logger != nil {
					logger.Info("booking snapshot skipped, store empty")
				}
				return nil
			}
			return err
		}
		if err := store.Save(ctx, records); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("booking snapshot rewritten", slog.Int("records", len(records)))
		}
		return nil
	}
}
