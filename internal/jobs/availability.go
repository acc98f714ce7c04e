package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fleetworks/carrental-backend/rental"
)

// AvailabilitySweep recomputes the cached cars.availability hint from open
// reservations. The flag is advisory only; the booking and reservation create
// paths always check the tables directly.
type AvailabilitySweep struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewAvailabilitySweep(db *sqlx.DB, logger *slog.Logger) *AvailabilitySweep {
	return &AvailabilitySweep{db: db, logger: logger}
}

// Run marks a car unavailable while a reservation or booking covers today.
// Scheduled via cron; also safe to call by hand.
func (s *AvailabilitySweep) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := rental.Today()
	res, err := s.db.ExecContext(ctx, sweepQuery, today)
	if err != nil {
		s.logger.Error("availability sweep failed", "error", err)
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		s.logger.Error("availability sweep failed", "error", err)
		return
	}
	s.logger.Info("availability sweep completed", "carsUpdated", n)
}

const sweepQuery = `
UPDATE cars SET availability = NOT (
  EXISTS (
    SELECT 1 FROM reservations r
    WHERE r.car_id = cars.car_id
      AND r.pickup_date <= $1
      AND (r.return_date IS NULL OR r.return_date > $1)
  )
  OR EXISTS (
    SELECT 1 FROM bookings b
    WHERE b.car_id = cars.car_id
      AND b.rental_start_date <= $1
      AND b.rental_end_date > $1
  )
)
`
