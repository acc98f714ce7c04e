package payment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID        int64 `db:"payment_id"`
	BookingID int64 `db:"booking_id"`
	// Amount is a decimal string
	Amount string `db:"amount"`
	Method string `db:"payment_method"`
	Status string `db:"payment_status"`
	// TransactionRef is handed to the payment provider and printed on
	// receipts.
	TransactionRef uuid.UUID    `db:"transaction_ref"`
	PaymentDate    sql.NullTime `db:"payment_date"`
	CreatedAt      time.Time    `db:"created_at"`
}
