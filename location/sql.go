package location

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("location not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, l *Location) error {
	return r.db.GetContext(ctx, l, createLocationQuery, l.Name, l.Address, l.ContactNumber, l.Coordinates)
}

const createLocationQuery = `
INSERT INTO locations (location_name, address, contact_number, coordinates)
VALUES ($1, $2, $3, $4)
RETURNING *
`

func (r *Repository) GetAll(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.SelectContext(ctx, &locations, getLocationsQuery)
	return locations, err
}

const getLocationsQuery = `SELECT * FROM locations ORDER BY location_id ASC`

func (r *Repository) GetByID(ctx context.Context, id int64) (Location, error) {
	var l Location
	err := r.db.GetContext(ctx, &l, getLocationQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return l, ErrNotFound
	}
	return l, err
}

const getLocationQuery = `SELECT * FROM locations WHERE location_id = $1`

// GetByName resolves a location by its display name. The name -> id -> cars
// flow is two round trips without a transaction; a delete between the two
// steps is an accepted race for this domain.
func (r *Repository) GetByName(ctx context.Context, name string) (Location, error) {
	var l Location
	err := r.db.GetContext(ctx, &l, getLocationByNameQuery, name)
	if errors.Is(err, sql.ErrNoRows) {
		return l, ErrNotFound
	}
	return l, err
}

const getLocationByNameQuery = `SELECT * FROM locations WHERE location_name = $1`

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteLocationQuery, id)
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

const deleteLocationQuery = `DELETE FROM locations WHERE location_id = $1`
