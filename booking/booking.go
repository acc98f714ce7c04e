package booking

import (
	"database/sql"
	"time"

	"github.com/fleetworks/carrental-backend/rental"
)

// Booking is a confirmed rental transaction: car x customer x date range x
// amount. Dates are date-only; the rental period is half-open
// [RentalStart, RentalEnd).
type Booking struct {
	ID          int64     `db:"booking_id"`
	CarID       int64     `db:"car_id"`
	CustomerID  int64     `db:"customer_id"`
	RentalStart time.Time `db:"rental_start_date"`
	RentalEnd   time.Time `db:"rental_end_date"`
	// TotalAmount is a decimal string
	TotalAmount string    `db:"total_amount"`
	CreatedAt   time.Time `db:"created_at"`
}

// Period returns the booked interval for availability checks.
func (b Booking) Period() rental.Period {
	end := b.RentalEnd
	return rental.Period{Start: b.RentalStart, End: &end}
}

// Detail is a booking denormalized across car, customer and user.
type Detail struct {
	Booking
	CarModel      string         `db:"car_model"`
	CarRentalRate string         `db:"rental_rate"`
	FirstName     string         `db:"first_name"`
	LastName      string         `db:"last_name"`
	Email         sql.NullString `db:"email"`
}
