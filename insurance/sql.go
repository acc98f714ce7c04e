package insurance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("insurance policy not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, p *Policy) error {
	return r.db.GetContext(ctx, p, createPolicyQuery,
		p.CarID, p.Provider, p.PolicyNumber, p.StartDate, p.EndDate)
}

const createPolicyQuery = `
INSERT INTO insurance (car_id, provider, policy_number, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING *
`

func (r *Repository) GetByID(ctx context.Context, id int64) (Policy, error) {
	var p Policy
	err := r.db.GetContext(ctx, &p, getPolicyQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

const getPolicyQuery = `SELECT * FROM insurance WHERE insurance_id = $1`

func (r *Repository) GetByCar(ctx context.Context, carID int64) ([]Policy, error) {
	var policies []Policy
	err := r.db.SelectContext(ctx, &policies, getPoliciesByCarQuery, carID)
	return policies, err
}

const getPoliciesByCarQuery = `SELECT * FROM insurance WHERE car_id = $1 ORDER BY start_date ASC`

func (r *Repository) GetAll(ctx context.Context) ([]Policy, error) {
	var policies []Policy
	err := r.db.SelectContext(ctx, &policies, getPoliciesQuery)
	return policies, err
}

const getPoliciesQuery = `SELECT * FROM insurance ORDER BY insurance_id ASC`

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deletePolicyQuery, id)
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

const deletePolicyQuery = `DELETE FROM insurance WHERE insurance_id = $1`
