package maintenance

import (
	"time"

	"github.com/goccy/go-json"
)

type Status int

const (
	Scheduled Status = iota
	InProgress
	Completed
)

type Record struct {
	ID          int64  `db:"maintenance_id"`
	CarID       int64  `db:"car_id"`
	Description string `db:"description"`
	// Cost is a decimal string
	Cost   string    `db:"cost"`
	Date   time.Time `db:"maintenance_date"`
	Status Status    `db:"status"`
}

func (s Status) String() string {
	return [...]string{"scheduled", "in_progress", "completed"}[s]
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseStatus maps the wire representation back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "scheduled":
		return Scheduled, true
	case "in_progress":
		return InProgress, true
	case "completed":
		return Completed, true
	}
	return 0, false
}

func (s *Status) Scan(i any) error {
	switch v := i.(type) {
	case string:
		switch v {
		case "scheduled":
			*s = Scheduled
			return nil
		case "in_progress":
			*s = InProgress
			return nil
		case "completed":
			*s = Completed
			return nil
		}
	}
	panic("invalid scan type")
}
