package taxi

import "time"

// Taxi is the resource record owned by the remote taxi service.
type Taxi struct {
	ID           int64  `json:"id"`
	Registration string `json:"registration"`
	SeatsNumber  string `json:"seatsNumber"`
}

type Customer struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Booking is both the create payload and the reservation the remote service
// returns. The remote service assigns the ID.
type Booking struct {
	ID          int64     `json:"id"`
	Taxi        Taxi      `json:"taxi"`
	Customer    Customer  `json:"taxiCustomer"`
	BookingDate time.Time `json:"bookingDate"`
}
