package travelagent

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/integrations/hotel"
	"github.com/Domenick1991/travelagent/internal/integrations/taxi"
	"github.com/Domenick1991/travelagent/internal/kafka"
	"github.com/Domenick1991/travelagent/internal/repository"
	"github.com/Domenick1991/travelagent/internal/service/booking"
	"github.com/Domenick1991/travelagent/internal/service/customers"
	"github.com/google/uuid"
)

var ErrTripNotFound = errors.New("trip booking not found")

type TravelAgentUseCase interface {
	BookTrip(ctx context.Context, input BookTripInput) (*domain.TripBooking, error)
	CancelTrip(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.TripBooking, error)
	List(ctx context.Context) ([]domain.TripBooking, error)
}

type TaxiClient interface {
	GetTaxiByID(ctx context.Context, id int64) (*taxi.Taxi, error)
	CreateBooking(ctx context.Context, booking taxi.Booking) (*taxi.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type HotelClient interface {
	GetHotelByID(ctx context.Context, id int64) (*hotel.Hotel, error)
	CreateBooking(ctx context.Context, booking hotel.Booking) (*hotel.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookTripInput struct {
	CustomerID  int64     `json:"customer_id"`
	FlightID    int64     `json:"flight_id"`
	BookingDate time.Time `json:"booking_date"`
	TaxiID      int64     `json:"taxi_id"`
	HotelID     int64     `json:"hotel_id"`
}

type TravelAgentService struct {
	trips              repository.TripRepository
	failures           repository.FailedCompensationRepository
	bookings           booking.BookingUseCase
	customers          customers.CustomerUseCase
	taxiClient         TaxiClient
	hotelClient        HotelClient
	producer           Producer
	tripTopic          string
	notificationsTopic string
}

type TravelAgentServiceOption func(*TravelAgentService)

func WithNotificationsTopic(topic string) TravelAgentServiceOption {
	return func(s *TravelAgentService) {
		s.notificationsTopic = topic
	}
}

func NewTravelAgentService(
	trips repository.TripRepository,
	failures repository.FailedCompensationRepository,
	bookings booking.BookingUseCase,
	customerSvc customers.CustomerUseCase,
	taxiClient TaxiClient,
	hotelClient HotelClient,
	producer Producer,
	tripTopic string,
	opts ...TravelAgentServiceOption,
) *TravelAgentService {
	service := &TravelAgentService{
		trips:       trips,
		failures:    failures,
		bookings:    bookings,
		customers:   customerSvc,
		taxiClient:  taxiClient,
		hotelClient: hotelClient,
		producer:    producer,
		tripTopic:   tripTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookTrip books the flight locally, then the taxi and hotel reservations on
// the remote services, then writes the aggregate record. The three systems
// share no transaction, so the steps form a saga: a failure anywhere rolls
// back everything created so far, in reverse order.
func (s *TravelAgentService) BookTrip(ctx context.Context, input BookTripInput) (*domain.TripBooking, error) {
	// Customer identity rides along on both remote reservations. Resolving
	// it first keeps validation failures ahead of any side effect.
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()

	var (
		flightBooking *domain.Booking
		taxiRes       *taxi.Booking
		hotelRes      *hotel.Booking
		trip          *domain.TripBooking
	)

	steps := []sagaStep{
		{
			name:        "create flight booking",
			resource:    domain.ResourceFlightBooking,
			reservation: func() int64 { return flightBooking.ID },
			run: func(ctx context.Context) error {
				b, err := s.bookings.Create(ctx, booking.CreateBookingInput{
					CustomerID:  input.CustomerID,
					FlightID:    input.FlightID,
					BookingDate: input.BookingDate,
				})
				if err != nil {
					return err
				}
				flightBooking = b
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.bookings.Delete(ctx, flightBooking.ID)
			},
		},
		{
			name:        "reserve taxi",
			resource:    domain.ResourceTaxi,
			reservation: func() int64 { return taxiRes.ID },
			run: func(ctx context.Context) error {
				t, err := s.taxiClient.GetTaxiByID(ctx, input.TaxiID)
				if err != nil {
					return err
				}
				created, err := s.taxiClient.CreateBooking(ctx, taxi.Booking{
					Taxi: *t,
					Customer: taxi.Customer{
						Name:        customer.Name,
						Email:       customer.Email,
						PhoneNumber: customer.PhoneNumber,
					},
					BookingDate: flightBooking.BookingDate,
				})
				if err != nil {
					return err
				}
				taxiRes = created
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.taxiClient.DeleteBooking(ctx, taxiRes.ID)
			},
		},
		{
			name:        "reserve hotel",
			resource:    domain.ResourceHotel,
			reservation: func() int64 { return hotelRes.ID },
			run: func(ctx context.Context) error {
				h, err := s.hotelClient.GetHotelByID(ctx, input.HotelID)
				if err != nil {
					return err
				}
				created, err := s.hotelClient.CreateBooking(ctx, hotel.Booking{
					Hotel: *h,
					Customer: hotel.Customer{
						Name:        customer.Name,
						Email:       customer.Email,
						PhoneNumber: customer.PhoneNumber,
					},
					BookingDate: flightBooking.BookingDate,
				})
				if err != nil {
					return err
				}
				hotelRes = created
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.hotelClient.DeleteBooking(ctx, hotelRes.ID)
			},
		},
		{
			name: "persist trip booking",
			run: func(ctx context.Context) error {
				trip = &domain.TripBooking{
					Reference:        reference,
					FlightBookingID:  flightBooking.ID,
					TaxiBookingID:    taxiRes.ID,
					TaxiID:           input.TaxiID,
					HotelBookingID:   hotelRes.ID,
					HotelID:          input.HotelID,
					AgentBookingDate: flightBooking.BookingDate,
				}
				return s.trips.Create(ctx, trip)
			},
		},
	}

	if err := runSaga(ctx, steps); err != nil {
		var cerr *CompensationError
		if errors.As(err, &cerr) {
			s.recordFailures(ctx, reference, cerr.Failures)
			s.publish(ctx, "trip_compensation_failed", &domain.TripBooking{Reference: reference}, customer.Email)
		}
		return nil, err
	}

	s.publish(ctx, "trip_booked", trip, customer.Email)
	return trip, nil
}

// CancelTrip removes the local aggregate record and then releases both
// remote reservations. Both deletes are attempted even when one fails; what
// could not be released is reported, not swallowed, since the local record
// is already gone.
func (s *TravelAgentService) CancelTrip(ctx context.Context, id int64) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTripNotFound
		}
		return err
	}

	if err := s.trips.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTripNotFound
		}
		return err
	}

	var failures []CompensationFailure
	// A reservation the remote side no longer knows counts as released.
	if err := s.taxiClient.DeleteBooking(ctx, trip.TaxiBookingID); err != nil && !errors.Is(err, taxi.ErrBookingNotFound) {
		failures = append(failures, CompensationFailure{Resource: domain.ResourceTaxi, ReservationID: trip.TaxiBookingID, Err: err})
	}
	if err := s.hotelClient.DeleteBooking(ctx, trip.HotelBookingID); err != nil && !errors.Is(err, hotel.ErrBookingNotFound) {
		failures = append(failures, CompensationFailure{Resource: domain.ResourceHotel, ReservationID: trip.HotelBookingID, Err: err})
	}

	s.publish(ctx, "trip_cancelled", trip, "")

	if len(failures) > 0 {
		s.recordFailures(ctx, trip.Reference, failures)
		s.publish(ctx, "trip_compensation_failed", trip, "")
		return &CompensationError{Failures: failures}
	}
	return nil
}

func (s *TravelAgentService) GetByID(ctx context.Context, id int64) (*domain.TripBooking, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *TravelAgentService) List(ctx context.Context) ([]domain.TripBooking, error) {
	return s.trips.List(ctx)
}

func (s *TravelAgentService) recordFailures(ctx context.Context, reference string, failures []CompensationFailure) {
	if s.failures == nil {
		return
	}
	for _, f := range failures {
		fc := &domain.FailedCompensation{
			Resource:      f.Resource,
			ReservationID: f.ReservationID,
			TripRef:       reference,
			Reason:        f.Err.Error(),
		}
		if err := s.failures.Create(ctx, fc); err != nil {
			log.Printf("WARNING: failed to record compensation failure (%s id=%d): %v", f.Resource, f.ReservationID, err)
		}
	}
}

func (s *TravelAgentService) publish(ctx context.Context, eventType string, trip *domain.TripBooking, email string) {
	if s.producer == nil || s.tripTopic == "" {
		return
	}
	event := kafka.TripEvent{
		Type:             eventType,
		Reference:        trip.Reference,
		TripID:           trip.ID,
		FlightBookingID:  trip.FlightBookingID,
		TaxiBookingID:    trip.TaxiBookingID,
		HotelBookingID:   trip.HotelBookingID,
		CustomerEmail:    email,
		AgentBookingDate: trip.AgentBookingDate,
	}
	if err := s.producer.Publish(ctx, s.tripTopic, trip.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for trip %s: %v", eventType, trip.Reference, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, trip.Reference, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for trip %s: %v", eventType, trip.Reference, err)
		}
	}
}

var _ TravelAgentUseCase = (*TravelAgentService)(nil)
