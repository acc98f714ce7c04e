package maintenance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("maintenance record not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, m *Record) error {
	return r.db.GetContext(ctx, m, createRecordQuery,
		m.CarID, m.Description, m.Cost, m.Date, m.Status.String())
}

const createRecordQuery = `
INSERT INTO maintenance (car_id, description, cost, maintenance_date, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING *
`

func (r *Repository) GetByID(ctx context.Context, id int64) (Record, error) {
	var m Record
	err := r.db.GetContext(ctx, &m, getRecordQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, err
}

const getRecordQuery = `SELECT * FROM maintenance WHERE maintenance_id = $1`

func (r *Repository) GetByCar(ctx context.Context, carID int64) ([]Record, error) {
	var records []Record
	err := r.db.SelectContext(ctx, &records, getRecordsByCarQuery, carID)
	return records, err
}

const getRecordsByCarQuery = `SELECT * FROM maintenance WHERE car_id = $1 ORDER BY maintenance_date ASC`

func (r *Repository) GetAll(ctx context.Context) ([]Record, error) {
	var records []Record
	err := r.db.SelectContext(ctx, &records, getRecordsQuery)
	return records, err
}

const getRecordsQuery = `SELECT * FROM maintenance ORDER BY maintenance_id ASC`

func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) error {
	res, err := r.db.ExecContext(ctx, setStatusQuery, status.String(), id)
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

const setStatusQuery = `UPDATE maintenance SET status = $1 WHERE maintenance_id = $2`

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRecordQuery, id)
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

const deleteRecordQuery = `DELETE FROM maintenance WHERE maintenance_id = $1`
