package car

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("car not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Car) error {
	return r.db.GetContext(ctx, c, createCarQuery,
		c.Model, c.Year, c.Color, c.RentalRate, c.Available, c.LocationID)
}

const createCarQuery = `
INSERT INTO cars (car_model, car_year, color, rental_rate, availability, location_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING *
`

func (r *Repository) GetByID(ctx context.Context, id int64) (CarWithLocation, error) {
	var c CarWithLocation
	err := r.db.GetContext(ctx, &c, getCarByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

const getCarByIDQuery = `
SELECT c.*, l.location_name
FROM cars c
LEFT JOIN locations l ON c.location_id = l.location_id
WHERE c.car_id = $1
`

func (r *Repository) GetAll(ctx context.Context) ([]CarWithLocation, error) {
	var cars []CarWithLocation
	err := r.db.SelectContext(ctx, &cars, getCarsQuery)
	return cars, err
}

const getCarsQuery = `
SELECT c.*, l.location_name
FROM cars c
LEFT JOIN locations l ON c.location_id = l.location_id
ORDER BY c.car_id ASC
`

func (r *Repository) GetByModel(ctx context.Context, model string) ([]CarWithLocation, error) {
	var cars []CarWithLocation
	err := r.db.SelectContext(ctx, &cars, getCarsByModelQuery, model)
	return cars, err
}

const getCarsByModelQuery = `
SELECT c.*, l.location_name
FROM cars c
LEFT JOIN locations l ON c.location_id = l.location_id
WHERE c.car_model = $1
ORDER BY c.car_id ASC
`

func (r *Repository) GetByLocation(ctx context.Context, locationID int64) ([]Car, error) {
	var cars []Car
	err := r.db.SelectContext(ctx, &cars, getCarsByLocationQuery, locationID)
	return cars, err
}

const getCarsByLocationQuery = `SELECT * FROM cars WHERE location_id = $1 ORDER BY car_id ASC`

// SetAvailable updates the cached availability hint.
func (r *Repository) SetAvailable(ctx context.Context, id int64, available bool) error {
	res, err := r.db.ExecContext(ctx, setAvailableQuery, available, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const setAvailableQuery = `UPDATE cars SET availability = $1 WHERE car_id = $2`

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteCarQuery, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteCarQuery = `DELETE FROM cars WHERE car_id = $1`
