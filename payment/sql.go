package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("payment not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, p *Payment) error {
	if p.TransactionRef == uuid.Nil {
		p.TransactionRef = uuid.New()
	}
	return r.db.GetContext(ctx, p, createPaymentQuery,
		p.BookingID, p.Amount, p.Method, p.Status, p.TransactionRef, p.PaymentDate)
}

const createPaymentQuery = `
INSERT INTO payments (booking_id, amount, payment_method, payment_status, transaction_ref, payment_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING *
`

func (r *Repository) GetByID(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, getPaymentQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

const getPaymentQuery = `SELECT * FROM payments WHERE payment_id = $1`

func (r *Repository) GetByBooking(ctx context.Context, bookingID int64) ([]Payment, error) {
	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, getPaymentsByBookingQuery, bookingID)
	return payments, err
}

const getPaymentsByBookingQuery = `SELECT * FROM payments WHERE booking_id = $1 ORDER BY payment_id ASC`

func (r *Repository) GetAll(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, getPaymentsQuery)
	return payments, err
}

const getPaymentsQuery = `SELECT * FROM payments ORDER BY payment_id ASC`

func (r *Repository) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, setPaymentStatusQuery, status, id)
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

const setPaymentStatusQuery = `UPDATE payments SET payment_status = $1 WHERE payment_id = $2`

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deletePaymentQuery, id)
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

const deletePaymentQuery = `DELETE FROM payments WHERE payment_id = $1`
