package insurance

import "time"

// Policy is an insurance policy covering a car for a date range.
type Policy struct {
	ID           int64     `db:"insurance_id"`
	CarID        int64     `db:"car_id"`
	Provider     string    `db:"provider"`
	PolicyNumber string    `db:"policy_number"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
}
