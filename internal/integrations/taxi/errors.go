package taxi

import "errors"

var (
	// ErrTaxiNotFound is returned when the remote service knows no taxi with
	// the requested id.
	ErrTaxiNotFound = errors.New("taxi not found")

	// ErrBookingNotFound is returned when a reservation to delete does not
	// exist on the remote side.
	ErrBookingNotFound = errors.New("taxi booking not found")

	// ErrRejected is returned when the remote service refuses the
	// reservation (for example the taxi is already booked).
	ErrRejected = errors.New("taxi booking rejected")

	// ErrUnavailable covers timeouts, transport failures and unexpected
	// remote responses.
	ErrUnavailable = errors.New("taxi service unavailable")
)
