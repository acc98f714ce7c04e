package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound = errors.New("booking not found")
	ErrOverlap  = errors.New("booking overlaps with an existing booking or reservation")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking after checking the car is free for the
// requested period. The check covers both bookings and open reservations and
// runs inside a transaction with FOR UPDATE so two concurrent requests for
// the same car serialize.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var overlappingIDs []int64
	err = tx.SelectContext(ctx, &overlappingIDs, checkBookingOverlapQuery, b.CarID, b.RentalStart, b.RentalEnd)
	if err != nil {
		return err
	}
	if len(overlappingIDs) > 0 {
		return ErrOverlap
	}

	err = tx.SelectContext(ctx, &overlappingIDs, checkReservationOverlapQuery, b.CarID, b.RentalStart, b.RentalEnd)
	if err != nil {
		return err
	}
	if len(overlappingIDs) > 0 {
		return ErrOverlap
	}

	err = tx.GetContext(ctx, b, createBookingQuery,
		b.CarID, b.CustomerID, b.RentalStart, b.RentalEnd, b.TotalAmount)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const checkBookingOverlapQuery = `
SELECT booking_id FROM bookings
WHERE car_id = $1
  AND rental_start_date < $3
  AND rental_end_date > $2
FOR UPDATE
`

const checkReservationOverlapQuery = `
SELECT reservation_id FROM reservations
WHERE car_id = $1
  AND pickup_date < $3
  AND (return_date IS NULL OR return_date > $2)
FOR UPDATE
`

const createBookingQuery = `
INSERT INTO bookings (car_id, customer_id, rental_start_date, rental_end_date, total_amount, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING *
`

// GetByID fetches a single booking with its car/customer/user fields.
func (r *Repository) GetByID(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	err := r.db.GetContext(ctx, &d, getBookingByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	return d, err
}

const getBookingByIDQuery = detailSelect + ` WHERE b.booking_id = $1`

// GetByCar fetches all bookings for a car, oldest rental first. An empty
// slice is a valid result, not an error.
func (r *Repository) GetByCar(ctx context.Context, carID int64) ([]Detail, error) {
	var bookings []Detail
	err := r.db.SelectContext(ctx, &bookings, getBookingsByCarQuery, carID)
	return bookings, err
}

const getBookingsByCarQuery = detailSelect + ` WHERE b.car_id = $1 ORDER BY b.rental_start_date ASC`

func (r *Repository) GetByCustomer(ctx context.Context, customerID int64) ([]Detail, error) {
	var bookings []Detail
	err := r.db.SelectContext(ctx, &bookings, getBookingsByCustomerQuery, customerID)
	return bookings, err
}

const getBookingsByCustomerQuery = detailSelect + ` WHERE b.customer_id = $1 ORDER BY b.rental_start_date ASC`

func (r *Repository) GetAll(ctx context.Context) ([]Detail, error) {
	var bookings []Detail
	err := r.db.SelectContext(ctx, &bookings, getAllBookingsQuery)
	return bookings, err
}

const getAllBookingsQuery = detailSelect + ` ORDER BY b.rental_start_date ASC`

// detailSelect is the single denormalizing join every booking read uses.
const detailSelect = `
SELECT b.*, c.car_model, c.rental_rate, u.first_name, u.last_name, u.email
FROM bookings b
JOIN cars c ON b.car_id = c.car_id
JOIN customers cu ON b.customer_id = cu.customer_id
JOIN users u ON cu.user_id = u.user_id`
