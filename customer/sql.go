package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("customer not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts the user row and its customer row in one transaction.
func (r *Repository) Create(ctx context.Context, firstName, lastName, email string) (Detail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Detail{}, err
	}
	defer tx.Rollback()

	var u User
	err = tx.GetContext(ctx, &u, createUserQuery, firstName, lastName, sql.NullString{String: email, Valid: email != ""})
	if err != nil {
		return Detail{}, err
	}

	var c Customer
	err = tx.GetContext(ctx, &c, createCustomerQuery, u.ID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Customer: c, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	return d, tx.Commit()
}

const createUserQuery = `
INSERT INTO users (first_name, last_name, email, created_at)
VALUES ($1, $2, $3, now())
RETURNING *
`

const createCustomerQuery = `INSERT INTO customers (user_id) VALUES ($1) RETURNING *`

func (r *Repository) GetByID(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	err := r.db.GetContext(ctx, &d, getCustomerByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

const getCustomerByIDQuery = `
SELECT c.*, u.first_name, u.last_name, u.email
FROM customers c
JOIN users u ON c.user_id = u.user_id
WHERE c.customer_id = $1
`

func (r *Repository) GetAll(ctx context.Context) ([]Detail, error) {
	var customers []Detail
	err := r.db.SelectContext(ctx, &customers, getCustomersQuery)
	return customers, err
}

const getCustomersQuery = `
SELECT c.*, u.first_name, u.last_name, u.email
FROM customers c
JOIN users u ON c.user_id = u.user_id
ORDER BY c.customer_id ASC
`

// GetByFirstName returns the first customer whose user record matches the
// given first name. Names are not unique; this is a best-effort secondary
// index kept for the by-name reservation view.
func (r *Repository) GetByFirstName(ctx context.Context, firstName string) (Detail, error) {
	var d Detail
	err := r.db.GetContext(ctx, &d, getCustomerByFirstNameQuery, firstName)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

const getCustomerByFirstNameQuery = `
SELECT c.*, u.first_name, u.last_name, u.email
FROM customers c
JOIN users u ON c.user_id = u.user_id
WHERE u.first_name = $1
ORDER BY c.customer_id ASC
LIMIT 1
`

// GetByEmail looks a customer up by their user email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (Detail, error) {
	var d Detail
	err := r.db.GetContext(ctx, &d, getCustomerByEmailQuery, email)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

const getCustomerByEmailQuery = `
SELECT c.*, u.first_name, u.last_name, u.email
FROM customers c
JOIN users u ON c.user_id = u.user_id
WHERE u.email = $1
`

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteCustomerQuery, id)
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

const deleteCustomerQuery = `DELETE FROM customers WHERE customer_id = $1`
