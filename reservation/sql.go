package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound      = errors.New("reservation not found")
	ErrOverlap       = errors.New("reservation overlaps with an existing booking or reservation")
	ErrInvalidPeriod = errors.New("return date must not be before pickup date")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation after checking the car is free. An
// open-ended reservation (no return date) blocks everything from its pickup
// date onward, so the overlap check treats it as unbounded.
func (r *Repository) Create(ctx context.Context, res *Reservation) error {
	if res.ReturnDate.Valid && res.ReturnDate.Time.Before(res.PickupDate) {
		return ErrInvalidPeriod
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var overlappingIDs []int64
	if res.ReturnDate.Valid {
		err = tx.SelectContext(ctx, &overlappingIDs, checkReservationOverlapQuery, res.CarID, res.PickupDate, res.ReturnDate.Time)
	} else {
		err = tx.SelectContext(ctx, &overlappingIDs, checkOpenEndedOverlapQuery, res.CarID, res.PickupDate)
	}
	if err != nil {
		return err
	}
	if len(overlappingIDs) > 0 {
		return ErrOverlap
	}

	if res.ReturnDate.Valid {
		err = tx.SelectContext(ctx, &overlappingIDs, checkBookingOverlapQuery, res.CarID, res.PickupDate, res.ReturnDate.Time)
	} else {
		err = tx.SelectContext(ctx, &overlappingIDs, checkBookingOpenEndedQuery, res.CarID, res.PickupDate)
	}
	if err != nil {
		return err
	}
	if len(overlappingIDs) > 0 {
		return ErrOverlap
	}

	err = tx.GetContext(ctx, res, createReservationQuery,
		res.CustomerID, res.CarID, res.ReservationDate, res.PickupDate, res.ReturnDate)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const checkReservationOverlapQuery = `
SELECT reservation_id FROM reservations
WHERE car_id = $1
  AND pickup_date < $3
  AND (return_date IS NULL OR return_date > $2)
FOR UPDATE
`

const checkOpenEndedOverlapQuery = `
SELECT reservation_id FROM reservations
WHERE car_id = $1
  AND (return_date IS NULL OR return_date > $2)
FOR UPDATE
`

const checkBookingOverlapQuery = `
SELECT booking_id FROM bookings
WHERE car_id = $1
  AND rental_start_date < $3
  AND rental_end_date > $2
FOR UPDATE
`

const checkBookingOpenEndedQuery = `
SELECT booking_id FROM bookings
WHERE car_id = $1
  AND rental_end_date > $2
FOR UPDATE
`

const createReservationQuery = `
INSERT INTO reservations (customer_id, car_id, reservation_date, pickup_date, return_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING *
`

// GetByCustomer fetches all reservations for a customer. Empty slice is a
// valid result, not an error.
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64) ([]Detail, error) {
	var reservations []Detail
	err := r.db.SelectContext(ctx, &reservations, getByCustomerQuery, customerID)
	return reservations, err
}

const getByCustomerQuery = detailSelect + ` WHERE r.customer_id = $1 ORDER BY r.pickup_date ASC`

func (r *Repository) GetByCar(ctx context.Context, carID int64) ([]Detail, error) {
	var reservations []Detail
	err := r.db.SelectContext(ctx, &reservations, getByCarQuery, carID)
	return reservations, err
}

const getByCarQuery = detailSelect + ` WHERE r.car_id = $1 ORDER BY r.pickup_date ASC`

// Returned fetches reservations whose car came back before the given date.
func (r *Repository) Returned(ctx context.Context, now time.Time) ([]Detail, error) {
	var reservations []Detail
	err := r.db.SelectContext(ctx, &reservations, returnedQuery, now)
	return reservations, err
}

const returnedQuery = detailSelect + `
WHERE r.return_date IS NOT NULL AND r.return_date < $1
ORDER BY r.return_date ASC`

// Current fetches reservations in progress on the given date: picked up on or
// before it and either open-ended or returned after it.
func (r *Repository) Current(ctx context.Context, now time.Time) ([]Detail, error) {
	var reservations []Detail
	err := r.db.SelectContext(ctx, &reservations, currentQuery, now)
	return reservations, err
}

const currentQuery = detailSelect + `
WHERE r.pickup_date <= $1
  AND (r.return_date IS NULL OR r.return_date > $1)
ORDER BY r.pickup_date ASC`

// CurrentByCustomer fetches a customer's open-ended reservations. This view
// is deliberately narrower than Current: a reservation with a future return
// date already set drops out of it.
func (r *Repository) CurrentByCustomer(ctx context.Context, customerID int64) ([]Detail, error) {
	var reservations []Detail
	err := r.db.SelectContext(ctx, &reservations, currentByCustomerQuery, customerID)
	return reservations, err
}

const currentByCustomerQuery = detailSelect + `
WHERE r.customer_id = $1
  AND r.return_date IS NULL
ORDER BY r.pickup_date ASC`

// detailSelect is the single denormalizing join every reservation read uses.
const detailSelect = `
SELECT r.*, u.first_name, u.last_name, u.email, c.car_model, c.rental_rate
FROM reservations r
JOIN customers cu ON r.customer_id = cu.customer_id
JOIN users u ON cu.user_id = u.user_id
JOIN cars c ON r.car_id = c.car_id`
