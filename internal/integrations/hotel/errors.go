package hotel

import "errors"

var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrBookingNotFound = errors.New("hotel booking not found")
	ErrRejected        = errors.New("hotel booking rejected")
	ErrUnavailable     = errors.New("hotel service unavailable")
)
