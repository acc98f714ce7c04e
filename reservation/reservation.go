package reservation

import (
	"database/sql"
	"time"

	"github.com/fleetworks/carrental-backend/rental"
)

// Reservation is a rental-in-progress record. ReturnDate is nullable: a null
// return date means the car is out and has not been returned, which blocks
// every future overlapping request for the car.
type Reservation struct {
	ID              int64        `db:"reservation_id"`
	CustomerID      int64        `db:"customer_id"`
	CarID           int64        `db:"car_id"`
	ReservationDate time.Time    `db:"reservation_date"`
	PickupDate      time.Time    `db:"pickup_date"`
	ReturnDate      sql.NullTime `db:"return_date"`
}

// Period returns the occupied interval for availability checks.
func (r Reservation) Period() rental.Period {
	p := rental.Period{Start: r.PickupDate}
	if r.ReturnDate.Valid {
		end := r.ReturnDate.Time
		p.End = &end
	}
	return p
}

// ReturnedAt reports whether the car was returned before the given date.
func (r Reservation) ReturnedAt(now time.Time) bool {
	return r.ReturnDate.Valid && r.ReturnDate.Time.Before(rental.DateOf(now))
}

// ActiveAt reports whether the reservation is in progress on the given date:
// picked up on or before it, and not yet returned (or returned after it).
func (r Reservation) ActiveAt(now time.Time) bool {
	d := rental.DateOf(now)
	if r.PickupDate.After(d) {
		return false
	}
	return !r.ReturnDate.Valid || r.ReturnDate.Time.After(d)
}

// Detail is a reservation denormalized across customer, user and car.
type Detail struct {
	Reservation
	FirstName     string         `db:"first_name"`
	LastName      string         `db:"last_name"`
	Email         sql.NullString `db:"email"`
	CarModel      string         `db:"car_model"`
	CarRentalRate string         `db:"rental_rate"`
}
