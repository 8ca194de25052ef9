package domain

import "time"

// TaxiReservation and HotelReservation are held by the remote booking
// services. Only the identifiers live here; the remote systems own the
// records.
type TaxiReservation struct {
	ID          int64
	TaxiID      int64
	BookingDate time.Time
}

type HotelReservation struct {
	ID          int64
	HotelID     int64
	BookingDate time.Time
}

// TripBooking links one flight booking with one taxi and one hotel
// reservation. It is written only after all three constituent reservations
// succeeded.
type TripBooking struct {
	ID               int64
	Reference        string
	FlightBookingID  int64
	TaxiBookingID    int64
	TaxiID           int64
	HotelBookingID   int64
	HotelID          int64
	AgentBookingDate time.Time
	CreatedAt        time.Time
}

// FailedCompensation records a rollback step that did not go through. The
// remote system may still hold the reservation; the worker retries the
// delete until it succeeds.
type FailedCompensation struct {
	ID            int64
	Resource      string
	ReservationID int64
	TripRef       string
	Reason        string
	CreatedAt     time.Time
}

const (
	ResourceFlightBooking = "flight-booking"
	ResourceTaxi          = "taxi"
	ResourceHotel         = "hotel"
)
