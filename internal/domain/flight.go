package domain

import "time"

type Flight struct {
	ID          int64
	FlightNo    string
	StartPlace  string
	Destination string
	SeatsNumber string
	FlightDate  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
