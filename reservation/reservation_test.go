package reservation

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fleetworks/carrental-backend/rental"
)

func date(s string) time.Time {
	t, err := rental.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func returned(s string) sql.NullTime {
	return sql.NullTime{Time: date(s), Valid: true}
}

func TestReturnedAt(t *testing.T) {
	now := date("2025-07-10")

	testCases := []struct {
		name     string
		r        Reservation
		expected bool
	}{
		{"returned in the past", Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-05")}, true},
		{"returned today", Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-10")}, false},
		{"returned in the future", Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-15")}, false},
		{"not yet returned", Reservation{PickupDate: date("2025-07-01")}, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.ReturnedAt(now))
		})
	}
}

func TestActiveAt(t *testing.T) {
	now := date("2025-07-10")

	testCases := []struct {
		name     string
		r        Reservation
		expected bool
	}{
		{"picked up, open-ended", Reservation{PickupDate: date("2025-07-01")}, true},
		{"picked up today, open-ended", Reservation{PickupDate: date("2025-07-10")}, true},
		{"picked up, returns later", Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-15")}, true},
		{"pickup in the future", Reservation{PickupDate: date("2025-07-20")}, false},
		{"already returned", Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-05")}, false},
		{"returned today", Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-10")}, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.ActiveAt(now))
		})
	}
}

func TestActiveAtIgnoresTimeOfDay(t *testing.T) {
	r := Reservation{PickupDate: date("2025-07-10")}
	lateEvening := time.Date(2025, 7, 10, 23, 59, 0, 0, time.UTC)
	assert.True(t, r.ActiveAt(lateEvening))
}

func TestPeriod(t *testing.T) {
	open := Reservation{PickupDate: date("2025-07-01")}
	assert.Nil(t, open.Period().End)
	assert.True(t, open.Period().Overlaps(date("2025-09-01"), date("2025-09-05")))

	closed := Reservation{PickupDate: date("2025-07-01"), ReturnDate: returned("2025-07-05")}
	assert.False(t, closed.Period().Overlaps(date("2025-07-05"), date("2025-07-08")))
	assert.True(t, closed.Period().Overlaps(date("2025-07-04"), date("2025-07-08")))
}
