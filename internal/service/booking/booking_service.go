package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/repository"
	"github.com/Domenick1991/travelagent/internal/service/customers"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// ErrDuplicateBooking means the flight already has a booking on the same
	// UTC calendar day.
	ErrDuplicateBooking = errors.New("flight is already booked for this day")
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CreateForGuest(ctx context.Context, input GuestBookingInput) (*domain.Booking, *domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error)
}

// Cache guards the uniqueness check against concurrent creates for the same
// flight and day. The database check stays authoritative.
type Cache interface {
	AcquireBookingDayLock(ctx context.Context, flightID int64, day time.Time, ttl time.Duration) (bool, error)
	ReleaseBookingDayLock(ctx context.Context, flightID int64, day time.Time) error
}

type CreateBookingInput struct {
	CustomerID  int64     `json:"customer_id"`
	FlightID    int64     `json:"flight_id"`
	BookingDate time.Time `json:"booking_date"`
}

type GuestBookingInput struct {
	Customer    customers.CreateCustomerInput `json:"customer"`
	FlightID    int64                         `json:"flight_id"`
	BookingDate time.Time                     `json:"booking_date"`
}

type BookingService struct {
	bookings  repository.BookingRepository
	customers repository.CustomerRepository
	flights   repository.FlightRepository
	cache     Cache
	lockTTL   time.Duration
}

func NewBookingService(
	bookings repository.BookingRepository,
	customers repository.CustomerRepository,
	flights repository.FlightRepository,
	cache Cache,
	lockTTL time.Duration,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		customers: customers,
		flights:   flights,
		cache:     cache,
		lockTTL:   lockTTL,
	}
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validateDate(input.BookingDate); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	booking := &domain.Booking{
		CustomerID:  input.CustomerID,
		FlightID:    input.FlightID,
		BookingDate: input.BookingDate,
	}
	if err := s.createUnique(ctx, booking, func(ctx context.Context) error {
		return s.bookings.Create(ctx, booking)
	}); err != nil {
		return nil, err
	}
	return booking, nil
}

// CreateForGuest registers the customer and books the flight in one unit of
// work. A failed booking leaves no customer behind.
func (s *BookingService) CreateForGuest(ctx context.Context, input GuestBookingInput) (*domain.Booking, *domain.Customer, error) {
	if err := customers.ValidateCustomer(input.Customer); err != nil {
		return nil, nil, err
	}
	if err := s.validateDate(input.BookingDate); err != nil {
		return nil, nil, err
	}
	if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrFlightNotFound
		}
		return nil, nil, err
	}

	customer := &domain.Customer{
		Name:        input.Customer.Name,
		Email:       input.Customer.Email,
		PhoneNumber: input.Customer.PhoneNumber,
	}
	booking := &domain.Booking{
		FlightID:    input.FlightID,
		BookingDate: input.BookingDate,
	}
	if err := s.createUnique(ctx, booking, func(ctx context.Context) error {
		return s.bookings.CreateWithCustomer(ctx, customer, booking)
	}); err != nil {
		return nil, nil, err
	}
	return booking, customer, nil
}

// createUnique runs the duplicate-day check around the given insert. The
// redis lock closes the window between check and insert; it is released on
// every path since the inserted row takes over as the guard.
func (s *BookingService) createUnique(ctx context.Context, booking *domain.Booking, insert func(ctx context.Context) error) error {
	day := domain.BookingDay(booking.BookingDate)

	if s.cache != nil {
		ok, err := s.cache.AcquireBookingDayLock(ctx, booking.FlightID, day, s.lockTTL)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDuplicateBooking
		}
		defer func() {
			_ = s.cache.ReleaseBookingDayLock(ctx, booking.FlightID, day)
		}()
	}

	exists, err := s.bookings.ExistsForFlightDay(ctx, booking.FlightID, day)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateBooking
	}

	return insert(ctx)
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

func (s *BookingService) ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	return s.bookings.ListByFlight(ctx, flightID)
}

func (s *BookingService) validateDate(date time.Time) error {
	verr := domain.NewValidationError()
	if date.IsZero() {
		verr.Add("booking_date", "booking date is required")
	} else if !date.After(time.Now()) {
		verr.Add("booking_date", "booking date must be in the future")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
