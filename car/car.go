// Package car
package car

import (
	"database/sql"
)

// Car represents a vehicle which can be rented as part of a booking or
// reservation.
type Car struct {
	// ID is the internal identifier for a car
	ID int64 `db:"car_id"`
	// Model is the manufacturer model name (e.g. "Corolla")
	Model string `db:"car_model"`
	Year  int    `db:"car_year"`
	Color string `db:"color"`
	// RentalRate is the daily rate as a decimal string
	RentalRate string `db:"rental_rate"`

	// Available is a cached hint derived from open reservations. It is not
	// authoritative: availability for a period must be computed from the
	// reservations and bookings tables.
	Available bool `db:"availability"`

	LocationID sql.NullInt64 `db:"location_id"`
}

// CarWithLocation is a car joined with its location for detail responses.
type CarWithLocation struct {
	Car
	LocationName sql.NullString `db:"location_name"`
}
