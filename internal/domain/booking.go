package domain

import "time"

// Booking reserves a flight for a customer on a given day. Only one booking
// may exist per flight per UTC calendar day.
type Booking struct {
	ID          int64
	CustomerID  int64
	FlightID    int64
	BookingDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookingDay truncates a booking date to its UTC calendar day. Duplicate
// detection compares days, not instants; times of day are ignored.
func BookingDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
