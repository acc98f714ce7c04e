package customer

import (
	"database/sql"
	"time"
)

// Customer links a rental customer to their underlying user identity (1:1).
type Customer struct {
	ID     int64 `db:"customer_id"`
	UserID int64 `db:"user_id"`
}

type User struct {
	ID        int64          `db:"user_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     sql.NullString `db:"email"`
	CreatedAt time.Time      `db:"created_at"`
}

// Detail is a customer joined with its user row.
type Detail struct {
	Customer
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     sql.NullString `db:"email"`
}
