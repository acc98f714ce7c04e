package location

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Location struct {
	ID            int64  `db:"location_id"`
	Name          string `db:"location_name"`
	Address       string `db:"address"`
	ContactNumber string `db:"contact_number"`

	Coordinates pgtype.Point `db:"coordinates"`
}
