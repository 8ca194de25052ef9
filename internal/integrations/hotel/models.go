package hotel

import "time"

// Hotel is the resource record owned by the remote hotel service.
type Hotel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Postcode string `json:"postcode"`
	Phone    string `json:"phoneNumber"`
}

type Customer struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type Booking struct {
	ID          int64     `json:"id"`
	Hotel       Hotel     `json:"hotel"`
	Customer    Customer  `json:"hotelCustomer"`
	BookingDate time.Time `json:"bookingDate"`
}
